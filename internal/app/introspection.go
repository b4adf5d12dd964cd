package app

import (
	"context"
	"log"

	"github.com/cleitonmarx/symbiont/depend"
	"github.com/cleitonmarx/symbiont/introspection"
	"github.com/cleitonmarx/symbiont/introspection/mermaid"
)

// MermaidGraphIntrospector generates a Mermaid graph of the gateway's configuration and dependencies
// and registers it in the dependency container for the /introspect endpoint.
type MermaidGraphIntrospector struct {
}

// Introspect generates a Mermaid graph from the provided introspection report and registers it as a named dependency.
func (i MermaidGraphIntrospector) Introspect(_ context.Context, r introspection.Report) error {
	mermaidGraph := mermaid.GenerateIntrospectionGraph(r)
	depend.RegisterNamed(mermaidGraph, "introspection-graph-mermaid")
	return nil
}

// ReportLoggerIntrospector logs which configuration keys fell back to their defaults.
type ReportLoggerIntrospector struct {
	Logger *log.Logger
}

// Introspect writes one line per configuration key read during startup.
func (i ReportLoggerIntrospector) Introspect(_ context.Context, r introspection.Report) error {
	logger := i.Logger
	if logger == nil {
		logger = log.Default()
	}
	for _, c := range r.Configs {
		source := "provided"
		if c.UsedDefault {
			source = "default"
		}
		logger.Printf("Introspection: config %s (%s)", c.Key, source)
	}
	return nil
}

package tools

import (
	"context"
	"fmt"
	"log"
	"maps"
	"slices"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont/depend"
)

var _ domain.ToolHandlerRegistry = Registry{}

// Registry maps tool names to their handler.
type Registry struct {
	handlers map[string]domain.ToolHandler
}

// NewRegistry creates a registry from handlers. Later handlers replace earlier ones with the same name.
func NewRegistry(handlers ...domain.ToolHandler) Registry {
	m := make(map[string]domain.ToolHandler, len(handlers))
	for _, h := range handlers {
		m[h.Name()] = h
	}
	return Registry{handlers: m}
}

// Handler returns the handler serving name.
func (r Registry) Handler(name string) (domain.ToolHandler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns the registered tool names sorted.
func (r Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.handlers))
}

// BuiltinHandlers returns the handlers for every builtin tool.
func BuiltinHandlers(client domain.BackendClient, timeProvider domain.CurrentTimeProvider) []domain.ToolHandler {
	return []domain.ToolHandler{
		NewListBases(client),
		NewGetBaseSchema(client),
		NewListTables(client),
		NewListRecords(client, timeProvider),
		NewGetRecord(client),
		NewSearchRecords(client),
		NewCreateRecord(client),
		NewUpdateRecord(client),
		NewDeleteRecord(client),
		NewCreateRecords(client),
	}
}

// InitToolRegistry registers the tool handlers and checks every catalog entry has one.
type InitToolRegistry struct {
	Logger       *log.Logger                `resolve:""`
	Client       domain.BackendClient       `resolve:""`
	TimeProvider domain.CurrentTimeProvider `resolve:""`
	Catalog      domain.ToolCatalog         `resolve:""`
}

// Initialize builds the registry.
func (i InitToolRegistry) Initialize(ctx context.Context) (context.Context, error) {
	handlers := BuiltinHandlers(i.Client, i.TimeProvider)
	builtin := NewRegistry(handlers...)

	for _, def := range i.Catalog.List() {
		if def.Endpoint != nil {
			handlers = append(handlers, NewEndpointTool(def, i.Client))
			continue
		}
		if _, ok := builtin.Handler(def.Name); !ok {
			return ctx, fmt.Errorf("tool %q has no handler", def.Name)
		}
	}
	registry := NewRegistry(handlers...)
	i.Logger.Printf("InitToolRegistry: %d tool handler(s) registered", len(registry.handlers))

	depend.Register[domain.ToolHandlerRegistry](registry)
	return ctx, nil
}

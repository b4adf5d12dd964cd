package http

import (
	"html/template"
	"net/http"

	"github.com/cleitonmarx/symbiont/depend"
)

var tmpl = template.Must(template.New("introspect").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script type="module">
import mermaid from 'https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.esm.min.mjs';
mermaid.initialize({ startOnLoad: false });
async function renderGraph() {
  const { svg } = await mermaid.render('mermaid-svg-id', {{.Graph}});
  document.getElementById('graph').innerHTML = svg;
}
window.addEventListener('DOMContentLoaded', renderGraph);
</script>
</head>
<body>
<h1>{{.Title}}</h1>
<div id="graph"></div>
</body>
</html>
`))

// IntrospectHandler renders the dependency graph of the running gateway.
func IntrospectHandler(w http.ResponseWriter, r *http.Request) {
	mermaidGraph, err := depend.ResolveNamed[string]("introspection-graph-mermaid")
	if err != nil {
		http.Error(w, "Failed to resolve dependency graph", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := tmpl.Execute(w, struct {
		Graph string
		Title string
	}{
		Title: "Tool Gateway Introspection Graph",
		Graph: mermaidGraph,
	}); err != nil {
		http.Error(w, "Failed to render introspection page", http.StatusInternalServerError)
	}
}

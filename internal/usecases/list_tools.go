package usecases

import (
	"context"
	"fmt"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/catalog"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont/depend"
)

// ToolDescriptor is the caller-facing description of a tool.
type ToolDescriptor struct {
	Name               string               `json:"name"`
	Category           string               `json:"category"`
	Description        string               `json:"description"`
	InputSchema        map[string]any       `json:"inputSchema"`
	TimeoutMs          int64                `json:"timeout_ms"`
	Cacheable          bool                 `json:"cacheable"`
	RequiresAuth       bool                 `json:"requires_auth"`
	RequiredPermission string               `json:"required_permission,omitempty"`
	Examples           []domain.ToolExample `json:"examples,omitempty"`
}

// ListTools describes every tool of the catalog.
type ListTools interface {
	Query(ctx context.Context) ([]ToolDescriptor, error)
}

// ListToolsImpl implements ListTools.
type ListToolsImpl struct {
	catalog domain.ToolCatalog
}

// NewListToolsImpl creates a ListToolsImpl.
func NewListToolsImpl(toolCatalog domain.ToolCatalog) ListToolsImpl {
	return ListToolsImpl{catalog: toolCatalog}
}

// Query returns the descriptors sorted by tool name.
func (lt ListToolsImpl) Query(context.Context) ([]ToolDescriptor, error) {
	defs := lt.catalog.List()
	out := make([]ToolDescriptor, 0, len(defs))
	for _, def := range defs {
		schema, err := catalog.InputSchemaMap(def)
		if err != nil {
			return nil, fmt.Errorf("failed to build input schema for %s: %w", def.Name, err)
		}
		out = append(out, ToolDescriptor{
			Name:               def.Name,
			Category:           def.Category,
			Description:        def.Description,
			InputSchema:        schema,
			TimeoutMs:          def.Timeout.Milliseconds(),
			Cacheable:          def.Cacheable,
			RequiresAuth:       def.RequiresAuth,
			RequiredPermission: def.RequiredPermission,
			Examples:           def.Examples,
		})
	}
	return out, nil
}

// InitListTools registers the ListTools use case.
type InitListTools struct {
	Catalog domain.ToolCatalog `resolve:""`
}

// Initialize registers the ListTools implementation in the dependency container.
func (i InitListTools) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[ListTools](NewListToolsImpl(i.Catalog))
	return ctx, nil
}

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
)

// ListBases lists the bases visible to the configured API key.
type ListBases struct {
	client domain.BackendClient
}

// NewListBases creates a new ListBases tool.
func NewListBases(client domain.BackendClient) ListBases {
	return ListBases{client: client}
}

// Name returns the tool name.
func (ListBases) Name() string { return "list_bases" }

// Execute executes ListBases.
func (t ListBases) Execute(ctx context.Context, call domain.ToolCall) (json.RawMessage, error) {
	params := struct {
		Offset string `json:"offset"`
	}{}
	if err := decodeArguments(call, &params); err != nil {
		return nil, err
	}

	req := domain.BackendRequest{Method: http.MethodGet, Path: "/meta/bases"}
	if params.Offset != "" {
		req.Query = map[string][]string{"offset": {params.Offset}}
	}
	return t.client.Do(ctx, req)
}

// GetBaseSchema returns every table of a base with its fields and views.
type GetBaseSchema struct {
	client domain.BackendClient
}

// NewGetBaseSchema creates a new GetBaseSchema tool.
func NewGetBaseSchema(client domain.BackendClient) GetBaseSchema {
	return GetBaseSchema{client: client}
}

// Name returns the tool name.
func (GetBaseSchema) Name() string { return "get_base_schema" }

// Execute executes GetBaseSchema.
func (t GetBaseSchema) Execute(ctx context.Context, call domain.ToolCall) (json.RawMessage, error) {
	params := struct {
		BaseID string `json:"base_id"`
	}{}
	if err := decodeArguments(call, &params); err != nil {
		return nil, err
	}
	return t.client.Do(ctx, domain.BackendRequest{
		Method: http.MethodGet,
		Path:   backendPath("meta", "bases", params.BaseID, "tables"),
	})
}

// ListTables lists the tables of a base. Without detailed only ids and names are kept.
type ListTables struct {
	client domain.BackendClient
}

// NewListTables creates a new ListTables tool.
func NewListTables(client domain.BackendClient) ListTables {
	return ListTables{client: client}
}

// Name returns the tool name.
func (ListTables) Name() string { return "list_tables" }

// Execute executes ListTables.
func (t ListTables) Execute(ctx context.Context, call domain.ToolCall) (json.RawMessage, error) {
	params := struct {
		BaseID   string `json:"base_id"`
		Detailed bool   `json:"detailed"`
	}{}
	if err := decodeArguments(call, &params); err != nil {
		return nil, err
	}

	raw, err := t.client.Do(ctx, domain.BackendRequest{
		Method: http.MethodGet,
		Path:   backendPath("meta", "bases", params.BaseID, "tables"),
	})
	if err != nil || params.Detailed {
		return raw, err
	}

	var schema struct {
		Tables []struct {
			ID             string `json:"id"`
			Name           string `json:"name"`
			Description    string `json:"description,omitempty"`
			PrimaryFieldID string `json:"primaryFieldId,omitempty"`
		} `json:"tables"`
	}
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("failed to decode base schema: %w", err)
	}
	return json.Marshal(schema)
}

package tools

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
)

// CreateRecord creates one record.
type CreateRecord struct {
	client domain.BackendClient
}

// NewCreateRecord creates a new CreateRecord tool.
func NewCreateRecord(client domain.BackendClient) CreateRecord {
	return CreateRecord{client: client}
}

// Name returns the tool name.
func (CreateRecord) Name() string { return "create_record" }

// Execute executes CreateRecord.
func (t CreateRecord) Execute(ctx context.Context, call domain.ToolCall) (json.RawMessage, error) {
	params := struct {
		BaseID   string         `json:"base_id"`
		Table    string         `json:"table"`
		Fields   map[string]any `json:"fields"`
		Typecast bool           `json:"typecast"`
	}{}
	if err := decodeArguments(call, &params); err != nil {
		return nil, err
	}
	return t.client.Do(ctx, domain.BackendRequest{
		Method: http.MethodPost,
		Path:   backendPath(params.BaseID, params.Table),
		Body:   map[string]any{"fields": params.Fields, "typecast": params.Typecast},
	})
}

// UpdateRecord patches the given fields of one record.
type UpdateRecord struct {
	client domain.BackendClient
}

// NewUpdateRecord creates a new UpdateRecord tool.
func NewUpdateRecord(client domain.BackendClient) UpdateRecord {
	return UpdateRecord{client: client}
}

// Name returns the tool name.
func (UpdateRecord) Name() string { return "update_record" }

// Execute executes UpdateRecord.
func (t UpdateRecord) Execute(ctx context.Context, call domain.ToolCall) (json.RawMessage, error) {
	params := struct {
		BaseID   string         `json:"base_id"`
		Table    string         `json:"table"`
		RecordID string         `json:"record_id"`
		Fields   map[string]any `json:"fields"`
		Typecast bool           `json:"typecast"`
	}{}
	if err := decodeArguments(call, &params); err != nil {
		return nil, err
	}
	return t.client.Do(ctx, domain.BackendRequest{
		Method: http.MethodPatch,
		Path:   backendPath(params.BaseID, params.Table, params.RecordID),
		Body:   map[string]any{"fields": params.Fields, "typecast": params.Typecast},
	})
}

// DeleteRecord deletes one record.
type DeleteRecord struct {
	client domain.BackendClient
}

// NewDeleteRecord creates a new DeleteRecord tool.
func NewDeleteRecord(client domain.BackendClient) DeleteRecord {
	return DeleteRecord{client: client}
}

// Name returns the tool name.
func (DeleteRecord) Name() string { return "delete_record" }

// Execute executes DeleteRecord.
func (t DeleteRecord) Execute(ctx context.Context, call domain.ToolCall) (json.RawMessage, error) {
	params := struct {
		BaseID   string `json:"base_id"`
		Table    string `json:"table"`
		RecordID string `json:"record_id"`
	}{}
	if err := decodeArguments(call, &params); err != nil {
		return nil, err
	}
	return t.client.Do(ctx, domain.BackendRequest{
		Method: http.MethodDelete,
		Path:   backendPath(params.BaseID, params.Table, params.RecordID),
	})
}

// CreateRecords creates up to ten records in one request.
type CreateRecords struct {
	client domain.BackendClient
}

// NewCreateRecords creates a new CreateRecords tool.
func NewCreateRecords(client domain.BackendClient) CreateRecords {
	return CreateRecords{client: client}
}

// Name returns the tool name.
func (CreateRecords) Name() string { return "create_records" }

// Execute executes CreateRecords. Each element of records is either a field map
// or an object with a "fields" key.
func (t CreateRecords) Execute(ctx context.Context, call domain.ToolCall) (json.RawMessage, error) {
	params := struct {
		BaseID   string           `json:"base_id"`
		Table    string           `json:"table"`
		Records  []map[string]any `json:"records"`
		Typecast bool             `json:"typecast"`
	}{}
	if err := decodeArguments(call, &params); err != nil {
		return nil, err
	}
	if len(params.Records) == 0 || len(params.Records) > maxRecordsPerWrite {
		return nil, domain.NewValidationErr("records: between 1 and 10 records are required")
	}

	records := make([]map[string]any, len(params.Records))
	for i, r := range params.Records {
		if fields, ok := r["fields"].(map[string]any); ok && len(r) == 1 {
			records[i] = map[string]any{"fields": fields}
			continue
		}
		records[i] = map[string]any{"fields": r}
	}
	return t.client.Do(ctx, domain.BackendRequest{
		Method: http.MethodPost,
		Path:   backendPath(params.BaseID, params.Table),
		Body:   map[string]any{"records": records, "typecast": params.Typecast},
	})
}

const maxRecordsPerWrite = 10

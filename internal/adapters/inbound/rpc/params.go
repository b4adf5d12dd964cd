package rpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/google/uuid"
)

type initializeParams struct {
	ClientInfo map[string]any `json:"client_info"`
	AuthToken  string         `json:"auth_token"`
}

type callToolParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
	Metadata  map[string]any `json:"metadata"`
	TimeoutMs *int64         `json:"timeout_ms"`
	Priority  *int           `json:"priority"`
}

type batchCallToolsParams struct {
	ToolCalls   []callToolParams `json:"tool_calls"`
	Parallel    bool             `json:"parallel"`
	StopOnError bool             `json:"stop_on_error"`
}

type invalidateCacheParams struct {
	Pattern string `json:"pattern"`
}

// decodeParams unmarshals raw into target. Absent or null params leave target untouched.
func decodeParams(raw json.RawMessage, target any) *Error {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), nullID) {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		data := map[string]any{"reason": "invalid_params"}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			data["field"] = typeErr.Field
		}
		return &Error{Code: CodeInvalidParams, Message: "invalid params", Data: data}
	}
	return nil
}

// toolCall converts p into a domain.ToolCall attributed to auth.
func (p callToolParams) toolCall(auth *domain.AuthContext, now time.Time) (domain.ToolCall, *Error) {
	if p.Name == "" {
		return domain.ToolCall{}, NewError(CodeInvalidParams, "invalid params: name is required")
	}
	call := domain.ToolCall{
		ID:        uuid.NewString(),
		ToolName:  p.Name,
		Arguments: p.Arguments,
		Auth:      auth,
		Metadata:  p.Metadata,
		CreatedAt: now,
	}
	if call.Arguments == nil {
		call.Arguments = map[string]any{}
	}
	if p.TimeoutMs != nil {
		if *p.TimeoutMs <= 0 {
			return domain.ToolCall{}, NewError(CodeInvalidParams, "invalid params: timeout_ms must be positive")
		}
		call.Timeout = time.Duration(*p.TimeoutMs) * time.Millisecond
	}
	if p.Priority != nil {
		call.Priority = domain.ClampPriority(*p.Priority)
	}
	return call, nil
}

func (p batchCallToolsParams) batchCall(auth *domain.AuthContext, now time.Time) (domain.BatchCall, *Error) {
	batch := domain.BatchCall{
		Calls:       make([]domain.ToolCall, 0, len(p.ToolCalls)),
		Parallel:    p.Parallel,
		StopOnError: p.StopOnError,
	}
	for i, tc := range p.ToolCalls {
		call, err := tc.toolCall(auth, now)
		if err != nil {
			err.Message = fmt.Sprintf("tool_calls[%d]: %s", i, err.Message)
			return domain.BatchCall{}, err
		}
		batch.Calls = append(batch.Calls, call)
	}
	return batch, nil
}

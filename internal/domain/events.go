package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ToolExecutedEvent is emitted once per final ToolResult.
type ToolExecutedEvent struct {
	ID          uuid.UUID  `json:"id"`
	CallID      string     `json:"call_id"`
	ToolName    string     `json:"tool_name"`
	Status      ToolStatus `json:"status"`
	ErrorKind   ErrorKind  `json:"error_kind,omitempty"`
	DurationMs  float64    `json:"duration_ms"`
	CacheHit    bool       `json:"cache_hit"`
	PrincipalID string     `json:"principal_id,omitempty"`
	TenantID    string     `json:"tenant_id,omitempty"`
	OccurredAt  time.Time  `json:"occurred_at"`
}

// NewToolExecutedEvent builds the usage event for a finished call.
func NewToolExecutedEvent(call ToolCall, result ToolResult) ToolExecutedEvent {
	evt := ToolExecutedEvent{
		ID:         uuid.New(),
		CallID:     result.CallID,
		ToolName:   result.ToolName,
		Status:     result.Status,
		DurationMs: result.DurationMs,
		CacheHit:   result.CacheHit,
		OccurredAt: result.CompletedAt,
	}
	if result.Error != nil {
		evt.ErrorKind = result.Error.Kind
	}
	if call.Auth != nil {
		evt.PrincipalID = call.Auth.PrincipalID
		evt.TenantID = call.Auth.TenantID
	}
	return evt
}

// ToolEventPublisher delivers usage events to the metrics sink.
type ToolEventPublisher interface {
	PublishEvent(ctx context.Context, event ToolExecutedEvent) error
}

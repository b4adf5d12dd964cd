package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewToolExecutedEvent(t *testing.T) {
	tests := map[string]struct {
		call   ToolCall
		result ToolResult
		want   ToolExecutedEvent
	}{
		"completed-anonymous": {
			call:   ToolCall{ID: "c1", ToolName: "bases"},
			result: NewCompletedResult(ToolCall{ID: "c1", ToolName: "list_bases"}, nil, 0, true, fixedTime),
			want: ToolExecutedEvent{
				CallID:     "c1",
				ToolName:   "list_bases",
				Status:     ToolStatus_Completed,
				CacheHit:   true,
				OccurredAt: fixedTime,
			},
		},
		"failed-authenticated": {
			call: ToolCall{ID: "c2", ToolName: "create_record", Auth: &AuthContext{PrincipalID: "alice", TenantID: "acme"}},
			result: NewFailedResult(ToolCall{ID: "c2", ToolName: "create_record"},
				NewToolError(ErrorKind_AuthorizationFailed, "missing permission"), 0, fixedTime),
			want: ToolExecutedEvent{
				CallID:      "c2",
				ToolName:    "create_record",
				Status:      ToolStatus_Failed,
				ErrorKind:   ErrorKind_AuthorizationFailed,
				PrincipalID: "alice",
				TenantID:    "acme",
				OccurredAt:  fixedTime,
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := NewToolExecutedEvent(tt.call, tt.result)
			assert.NotEqual(t, uuid.Nil, got.ID)
			got.ID = uuid.Nil
			assert.Equal(t, tt.want, got)
		})
	}
}

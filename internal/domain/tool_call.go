package domain

import (
	"encoding/json"
	"time"
)

const (
	// MinCallPriority and MaxCallPriority bound ToolCall.Priority.
	MinCallPriority = 0
	MaxCallPriority = 10
)

// ToolCall is a request to execute one tool. It is read-only once dispatched.
type ToolCall struct {
	ID        string
	ToolName  string
	Arguments map[string]any
	Auth      *AuthContext
	Metadata  map[string]any
	Priority  int
	Timeout   time.Duration
	CreatedAt time.Time
}

// ClampPriority bounds p to the accepted priority range.
func ClampPriority(p int) int {
	return max(MinCallPriority, min(p, MaxCallPriority))
}

// PrincipalID returns the id of the principal attached to the call, if any.
func (c ToolCall) PrincipalID() string {
	if c.Auth == nil {
		return ""
	}
	return c.Auth.PrincipalID
}

// ToolStatus is the lifecycle state of a tool execution.
type ToolStatus string

const (
	ToolStatus_Pending   ToolStatus = "pending"
	ToolStatus_Running   ToolStatus = "running"
	ToolStatus_Completed ToolStatus = "completed"
	ToolStatus_Failed    ToolStatus = "failed"
	ToolStatus_Timeout   ToolStatus = "timeout"
	ToolStatus_Cancelled ToolStatus = "cancelled"
)

// ToolResult is the final record of a tool execution.
// Exactly one of Payload and Error is set.
type ToolResult struct {
	CallID      string          `json:"call_id"`
	ToolName    string          `json:"tool_name"`
	Status      ToolStatus      `json:"status"`
	Payload     json.RawMessage `json:"result,omitempty"`
	Error       *ToolError      `json:"error,omitempty"`
	DurationMs  float64         `json:"duration_ms"`
	CacheHit    bool            `json:"cache_hit"`
	CompletedAt time.Time       `json:"completed_at"`
}

// NewCompletedResult builds a successful result for call.
func NewCompletedResult(call ToolCall, payload json.RawMessage, duration time.Duration, cacheHit bool, completedAt time.Time) ToolResult {
	if payload == nil {
		payload = json.RawMessage("null")
	}
	return ToolResult{
		CallID:      call.ID,
		ToolName:    call.ToolName,
		Status:      ToolStatus_Completed,
		Payload:     payload,
		DurationMs:  durationMs(duration),
		CacheHit:    cacheHit,
		CompletedAt: completedAt,
	}
}

// NewFailedResult builds a failed result for call.
func NewFailedResult(call ToolCall, toolErr *ToolError, duration time.Duration, completedAt time.Time) ToolResult {
	if toolErr == nil {
		toolErr = NewToolError(ErrorKind_InternalError, "tool execution failed without an error")
	}
	return ToolResult{
		CallID:      call.ID,
		ToolName:    call.ToolName,
		Status:      ToolStatus_Failed,
		Error:       toolErr,
		DurationMs:  durationMs(duration),
		CompletedAt: completedAt,
	}
}

// Succeeded reports whether the result completed.
func (r ToolResult) Succeeded() bool {
	return r.Status == ToolStatus_Completed
}

func durationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

// BatchCall is an ordered group of calls executed under one policy.
type BatchCall struct {
	Calls       []ToolCall
	Parallel    bool
	StopOnError bool
}

// BatchResult holds results in the same order as BatchCall.Calls.
type BatchResult struct {
	Results         []ToolResult `json:"results"`
	TotalDurationMs float64      `json:"total_duration_ms"`
	SuccessCount    int          `json:"success_count"`
	ErrorCount      int          `json:"error_count"`
}

// NewBatchResult aggregates results into a BatchResult.
func NewBatchResult(results []ToolResult, total time.Duration) BatchResult {
	br := BatchResult{
		Results:         results,
		TotalDurationMs: durationMs(total),
	}
	for _, r := range results {
		if r.Succeeded() {
			br.SuccessCount++
		} else {
			br.ErrorCount++
		}
	}
	return br
}

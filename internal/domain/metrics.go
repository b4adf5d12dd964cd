package domain

import "time"

// ToolExecutionMetrics are the rolling counters kept for one tool.
type ToolExecutionMetrics struct {
	ToolName       string              `json:"tool_name"`
	TotalCalls     int64               `json:"total_calls"`
	SuccessCount   int64               `json:"success_count"`
	FailureCount   int64               `json:"failure_count"`
	AvgDurationMs  float64             `json:"avg_duration_ms"`
	CacheHitRate   float64             `json:"cache_hit_rate"`
	ErrorCounts    map[ErrorKind]int64 `json:"error_counts"`
	LastExecutedAt time.Time           `json:"last_executed_at"`
}

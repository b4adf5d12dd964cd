package usecases

import (
	"context"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter            = otel.Meter("usecases")
	ToolCallsTotal   metric.Int64Counter
	ToolCallDuration metric.Float64Histogram
	ToolCacheHits    metric.Int64Counter
	UsageEventsDrop  metric.Int64Counter
)

func init() {
	var err error
	ToolCallsTotal, err = meter.Int64Counter(
		"tool_calls_total",
		metric.WithDescription("Total tool executions by tool, status and error kind"),
	)
	if err != nil {
		panic(err)
	}

	ToolCallDuration, err = meter.Float64Histogram(
		"tool_call_duration",
		metric.WithDescription("Tool execution latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		panic(err)
	}

	ToolCacheHits, err = meter.Int64Counter(
		"tool_cache_hits_total",
		metric.WithDescription("Tool executions served from the result cache"),
	)
	if err != nil {
		panic(err)
	}

	UsageEventsDrop, err = meter.Int64Counter(
		"usage_events_dropped_total",
		metric.WithDescription("Usage events dropped because the queue was full"),
	)
	if err != nil {
		panic(err)
	}
}

// RecordToolCall exports one finished execution to the OpenTelemetry instruments.
func RecordToolCall(ctx context.Context, result domain.ToolResult) {
	attrs := []attribute.KeyValue{
		attribute.String("tool", result.ToolName),
		attribute.String("status", string(result.Status)),
	}
	if result.Error != nil {
		attrs = append(attrs, attribute.String("error_kind", string(result.Error.Kind)))
	}
	ToolCallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	ToolCallDuration.Record(ctx, result.DurationMs/1000, metric.WithAttributes(attribute.String("tool", result.ToolName)))
	if result.CacheHit {
		ToolCacheHits.Add(ctx, 1, metric.WithAttributes(attribute.String("tool", result.ToolName)))
	}
}

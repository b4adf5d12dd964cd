package usecases

import (
	"context"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont/depend"
)

// ServiceStatus is the read-only management view of the gateway.
type ServiceStatus struct {
	Status        string                        `json:"status"`
	StartedAt     time.Time                     `json:"started_at"`
	UptimeSeconds float64                       `json:"uptime_seconds"`
	ToolCount     int                           `json:"tool_count"`
	DroppedEvents int64                         `json:"dropped_usage_events"`
	Tools         []domain.ToolExecutionMetrics `json:"tools"`
}

// GetStatus reports uptime, catalog size and per-tool counters.
type GetStatus interface {
	Query(ctx context.Context) ServiceStatus
}

// GetStatusImpl implements GetStatus.
type GetStatusImpl struct {
	catalog      domain.ToolCatalog
	metrics      MetricsCollector
	events       UsageEventQueue
	timeProvider domain.CurrentTimeProvider
	startedAt    time.Time
}

// NewGetStatusImpl creates a GetStatusImpl whose uptime starts now.
func NewGetStatusImpl(toolCatalog domain.ToolCatalog, metrics MetricsCollector, events UsageEventQueue, timeProvider domain.CurrentTimeProvider) GetStatusImpl {
	return GetStatusImpl{
		catalog:      toolCatalog,
		metrics:      metrics,
		events:       events,
		timeProvider: timeProvider,
		startedAt:    timeProvider.Now(),
	}
}

// Query returns a point-in-time status.
func (gs GetStatusImpl) Query(context.Context) ServiceStatus {
	return ServiceStatus{
		Status:        "ok",
		StartedAt:     gs.startedAt,
		UptimeSeconds: gs.timeProvider.Now().Sub(gs.startedAt).Truncate(time.Second).Seconds(),
		ToolCount:     len(gs.catalog.List()),
		DroppedEvents: gs.events.Dropped(),
		Tools:         gs.metrics.Snapshot(),
	}
}

// InitGetStatus registers the GetStatus use case.
type InitGetStatus struct {
	Catalog      domain.ToolCatalog         `resolve:""`
	Metrics      MetricsCollector           `resolve:""`
	Events       UsageEventQueue            `resolve:""`
	TimeProvider domain.CurrentTimeProvider `resolve:""`
}

// Initialize registers the GetStatus implementation in the dependency container.
func (i InitGetStatus) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[GetStatus](NewGetStatusImpl(i.Catalog, i.Metrics, i.Events, i.TimeProvider))
	return ctx, nil
}

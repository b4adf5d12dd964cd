package usecases

import (
	"context"
	"sort"
	"sync"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont/depend"
)

// MetricsCollector keeps per-tool rolling execution counters.
type MetricsCollector interface {
	// Record adds one finished execution to the counters of tool.
	Record(tool string, durationMs float64, success bool, kind domain.ErrorKind, cacheHit bool)
	// Snapshot returns a point-in-time copy of every tool's counters, sorted by tool name.
	Snapshot() []domain.ToolExecutionMetrics
	// ToolSnapshot returns a copy of the counters of one tool.
	ToolSnapshot(tool string) (domain.ToolExecutionMetrics, bool)
}

type toolCounters struct {
	mu sync.Mutex
	m  domain.ToolExecutionMetrics
}

// MetricsCollectorImpl guards each tool with its own lock. The map lock is only
// taken for writing when a tool is seen for the first time.
type MetricsCollectorImpl struct {
	mu           sync.RWMutex
	tools        map[string]*toolCounters
	timeProvider domain.CurrentTimeProvider
}

// NewMetricsCollectorImpl creates an empty collector.
func NewMetricsCollectorImpl(timeProvider domain.CurrentTimeProvider) *MetricsCollectorImpl {
	return &MetricsCollectorImpl{
		tools:        make(map[string]*toolCounters),
		timeProvider: timeProvider,
	}
}

func (mc *MetricsCollectorImpl) counters(tool string) *toolCounters {
	mc.mu.RLock()
	c, ok := mc.tools[tool]
	mc.mu.RUnlock()
	if ok {
		return c
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()
	if c, ok = mc.tools[tool]; ok {
		return c
	}
	c = &toolCounters{m: domain.ToolExecutionMetrics{
		ToolName:    tool,
		ErrorCounts: map[domain.ErrorKind]int64{},
	}}
	mc.tools[tool] = c
	return c
}

// Record updates the averages incrementally so memory stays bounded.
func (mc *MetricsCollectorImpl) Record(tool string, durationMs float64, success bool, kind domain.ErrorKind, cacheHit bool) {
	now := mc.timeProvider.Now()
	c := mc.counters(tool)

	c.mu.Lock()
	defer c.mu.Unlock()

	m := &c.m
	m.TotalCalls++
	if success {
		m.SuccessCount++
	} else {
		m.FailureCount++
		if kind != "" {
			m.ErrorCounts[kind]++
		}
	}
	n := float64(m.TotalCalls)
	m.AvgDurationMs += (durationMs - m.AvgDurationMs) / n
	hit := 0.0
	if cacheHit {
		hit = 1
	}
	m.CacheHitRate += (hit - m.CacheHitRate) / n
	m.LastExecutedAt = now
}

// Snapshot copies the counters of every tool.
func (mc *MetricsCollectorImpl) Snapshot() []domain.ToolExecutionMetrics {
	mc.mu.RLock()
	names := make([]string, 0, len(mc.tools))
	counters := make(map[string]*toolCounters, len(mc.tools))
	for name, c := range mc.tools {
		names = append(names, name)
		counters[name] = c
	}
	mc.mu.RUnlock()

	sort.Strings(names)
	out := make([]domain.ToolExecutionMetrics, 0, len(names))
	for _, name := range names {
		out = append(out, counters[name].copy())
	}
	return out
}

// ToolSnapshot copies the counters of one tool.
func (mc *MetricsCollectorImpl) ToolSnapshot(tool string) (domain.ToolExecutionMetrics, bool) {
	mc.mu.RLock()
	c, ok := mc.tools[tool]
	mc.mu.RUnlock()
	if !ok {
		return domain.ToolExecutionMetrics{}, false
	}
	return c.copy(), true
}

func (c *toolCounters) copy() domain.ToolExecutionMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.m
	m.ErrorCounts = make(map[domain.ErrorKind]int64, len(c.m.ErrorCounts))
	for k, v := range c.m.ErrorCounts {
		m.ErrorCounts[k] = v
	}
	return m
}

// InitMetricsCollector registers the MetricsCollector.
type InitMetricsCollector struct {
	TimeProvider domain.CurrentTimeProvider `resolve:""`
}

// Initialize registers the MetricsCollector in the dependency container.
func (i InitMetricsCollector) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[MetricsCollector](NewMetricsCollectorImpl(i.TimeProvider))
	return ctx, nil
}


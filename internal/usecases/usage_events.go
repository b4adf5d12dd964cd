package usecases

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// UsageEventQueue is a bounded in-process queue of usage events.
type UsageEventQueue interface {
	// Enqueue adds event without blocking and reports whether it was accepted.
	Enqueue(ctx context.Context, event domain.ToolExecutedEvent) bool
	// Drain removes up to limit queued events without blocking.
	Drain(limit int) []domain.ToolExecutedEvent
	// Dropped returns how many events were rejected because the queue was full.
	Dropped() int64
}

// UsageEventQueueImpl is a UsageEventQueue backed by a buffered channel.
type UsageEventQueueImpl struct {
	events  chan domain.ToolExecutedEvent
	dropped *atomic.Int64
}

// NewUsageEventQueueImpl creates a queue holding up to size events.
func NewUsageEventQueueImpl(size int) UsageEventQueueImpl {
	return UsageEventQueueImpl{
		events:  make(chan domain.ToolExecutedEvent, max(size, 1)),
		dropped: &atomic.Int64{},
	}
}

// Enqueue drops the event when the queue is full.
func (q UsageEventQueueImpl) Enqueue(ctx context.Context, event domain.ToolExecutedEvent) bool {
	select {
	case q.events <- event:
		return true
	default:
		q.dropped.Add(1)
		UsageEventsDrop.Add(ctx, 1)
		return false
	}
}

// Drain returns the events currently queued, at most limit.
func (q UsageEventQueueImpl) Drain(limit int) []domain.ToolExecutedEvent {
	var out []domain.ToolExecutedEvent
	for len(out) < limit {
		select {
		case evt := <-q.events:
			out = append(out, evt)
		default:
			return out
		}
	}
	return out
}

// Dropped returns the number of rejected events.
func (q UsageEventQueueImpl) Dropped() int64 {
	return q.dropped.Load()
}

// RelayUsageEvents publishes queued usage events to the metrics sink.
type RelayUsageEvents interface {
	// Execute publishes the queued events and returns how many were delivered.
	Execute(ctx context.Context) (int, error)
}

// RelayUsageEventsImpl implements RelayUsageEvents.
type RelayUsageEventsImpl struct {
	queue     UsageEventQueue
	publisher domain.ToolEventPublisher
	logger    *log.Logger
	batchSize int
}

// NewRelayUsageEventsImpl creates a relay draining at most batchSize events per run.
func NewRelayUsageEventsImpl(queue UsageEventQueue, publisher domain.ToolEventPublisher, logger *log.Logger, batchSize int) RelayUsageEventsImpl {
	return RelayUsageEventsImpl{
		queue:     queue,
		publisher: publisher,
		logger:    logger,
		batchSize: max(batchSize, 1),
	}
}

// Execute publishes one batch. Failed events are logged and discarded: usage
// events are best effort and never block tool execution.
func (r RelayUsageEventsImpl) Execute(ctx context.Context) (int, error) {
	events := r.queue.Drain(r.batchSize)
	if len(events) == 0 {
		return 0, nil
	}

	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(attribute.Int("events", len(events))))
	defer span.End()

	delivered := 0
	var lastErr error
	for _, evt := range events {
		if err := r.publisher.PublishEvent(spanCtx, evt); err != nil {
			r.logger.Printf("RelayUsageEvents: publish failed for event %s: %v", evt.ID, err)
			lastErr = err
			continue
		}
		delivered++
	}
	if delivered == 0 && telemetry.RecordErrorAndStatus(span, lastErr) {
		return 0, lastErr
	}
	return delivered, nil
}

// InitUsageEvents registers the UsageEventQueue and the RelayUsageEvents use case.
type InitUsageEvents struct {
	Publisher  domain.ToolEventPublisher `resolve:""`
	Logger     *log.Logger               `resolve:""`
	BufferSize int                       `config:"USAGE_EVENT_BUFFER" default:"256"`
	BatchSize  int                       `config:"USAGE_EVENT_BATCH_SIZE" default:"100"`
}

// Initialize registers the queue and the relay in the dependency container.
func (i InitUsageEvents) Initialize(ctx context.Context) (context.Context, error) {
	queue := NewUsageEventQueueImpl(i.BufferSize)
	depend.Register[UsageEventQueue](queue)
	depend.Register[RelayUsageEvents](NewRelayUsageEventsImpl(queue, i.Publisher, i.Logger, i.BatchSize))
	return ctx, nil
}

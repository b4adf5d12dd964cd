package usecases

import (
	"context"
	"fmt"
	"log"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// ExecuteBatch runs a group of tool calls under one concurrency policy.
type ExecuteBatch interface {
	// Execute returns results in input order. The error is set only when the batch itself is invalid.
	Execute(ctx context.Context, batch domain.BatchCall) (domain.BatchResult, error)
}

// ExecuteBatchImpl fans calls out to ExecuteTool.
type ExecuteBatchImpl struct {
	executor       ExecuteTool
	timeProvider   domain.CurrentTimeProvider
	logger         *log.Logger
	maxBatchSize   int
	maxConcurrency int
}

// NewExecuteBatchImpl creates the batch scheduler.
func NewExecuteBatchImpl(executor ExecuteTool, timeProvider domain.CurrentTimeProvider, logger *log.Logger, maxBatchSize, maxConcurrency int) ExecuteBatchImpl {
	return ExecuteBatchImpl{
		executor:       executor,
		timeProvider:   timeProvider,
		logger:         logger,
		maxBatchSize:   maxBatchSize,
		maxConcurrency: max(maxConcurrency, 1),
	}
}

// Execute validates the batch size, then runs the calls in parallel or in order.
func (eb ExecuteBatchImpl) Execute(ctx context.Context, batch domain.BatchCall) (domain.BatchResult, error) {
	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(
		attribute.Int("batch.size", len(batch.Calls)),
		attribute.Bool("batch.parallel", batch.Parallel),
		attribute.Bool("batch.stop_on_error", batch.StopOnError),
	))
	defer span.End()

	if n := len(batch.Calls); n == 0 || n > eb.maxBatchSize {
		err := domain.NewValidationErr(fmt.Sprintf("tool_calls must contain between 1 and %d calls, got %d", eb.maxBatchSize, n))
		telemetry.RecordErrorAndStatus(span, err)
		return domain.BatchResult{}, err
	}

	start := eb.timeProvider.Now()
	var results []domain.ToolResult
	if batch.Parallel {
		results = eb.runParallel(spanCtx, batch.Calls)
	} else {
		results = eb.runSequential(spanCtx, batch.Calls, batch.StopOnError)
	}

	elapsed, _ := domain.Elapsed(eb.timeProvider, start)
	br := domain.NewBatchResult(results, elapsed)
	span.SetAttributes(
		attribute.Int("batch.success_count", br.SuccessCount),
		attribute.Int("batch.error_count", br.ErrorCount),
	)
	telemetry.RecordErrorAndStatus(span, nil)
	return br, nil
}

// runParallel writes each result into its input slot. The calls share the
// caller's context, not a group context, so one failure never cancels siblings.
// With stop_on_error every dispatched call still runs to completion.
func (eb ExecuteBatchImpl) runParallel(ctx context.Context, calls []domain.ToolCall) []domain.ToolResult {
	results := make([]domain.ToolResult, len(calls))

	var g errgroup.Group
	g.SetLimit(eb.maxConcurrency)
	for i, call := range calls {
		g.Go(func() error {
			results[i] = eb.runOne(ctx, call)
			return nil
		})
	}
	g.Wait() //nolint:errcheck

	return results
}

func (eb ExecuteBatchImpl) runSequential(ctx context.Context, calls []domain.ToolCall, stopOnError bool) []domain.ToolResult {
	results := make([]domain.ToolResult, 0, len(calls))
	for _, call := range calls {
		r := eb.runOne(ctx, call)
		results = append(results, r)
		if stopOnError && !r.Succeeded() {
			break
		}
	}
	return results
}

// runOne isolates a slot: a panic becomes a failed INTERNAL_ERROR result for that call only.
func (eb ExecuteBatchImpl) runOne(ctx context.Context, call domain.ToolCall) (result domain.ToolResult) {
	start := eb.timeProvider.Now()
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Printf("ExecuteBatch: recovered panic for call %s: %v", call.ID, r)
			elapsed, now := domain.Elapsed(eb.timeProvider, start)
			result = domain.NewFailedResult(call,
				domain.NewToolError(domain.ErrorKind_InternalError, "internal error while executing tool"),
				elapsed, now)
		}
	}()
	return eb.executor.Execute(ctx, call)
}

// InitExecuteBatch registers the ExecuteBatch use case.
type InitExecuteBatch struct {
	Executor       ExecuteTool                `resolve:""`
	TimeProvider   domain.CurrentTimeProvider `resolve:""`
	Logger         *log.Logger                `resolve:""`
	MaxBatchSize   int                        `config:"MAX_BATCH_SIZE" default:"10"`
	MaxConcurrency int                        `config:"BATCH_MAX_CONCURRENCY" default:"5"`
}

// Initialize registers the ExecuteBatch implementation in the dependency container.
func (i InitExecuteBatch) Initialize(ctx context.Context) (context.Context, error) {
	if i.MaxBatchSize < 1 {
		return ctx, fmt.Errorf("MAX_BATCH_SIZE must be at least 1, got %d", i.MaxBatchSize)
	}
	depend.Register[ExecuteBatch](NewExecuteBatchImpl(i.Executor, i.TimeProvider, i.Logger, i.MaxBatchSize, i.MaxConcurrency))
	return ctx, nil
}

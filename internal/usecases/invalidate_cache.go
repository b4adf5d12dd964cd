package usecases

import (
	"context"
	"log"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
)

// InvalidateCache is the administrative cache invalidation operation.
type InvalidateCache interface {
	// Execute deletes the entries matching pattern, all entries when empty, and returns the count.
	Execute(ctx context.Context, pattern string) (int, error)
}

// InvalidateCacheImpl implements InvalidateCache.
type InvalidateCacheImpl struct {
	cache  ToolResultCache
	logger *log.Logger
}

// NewInvalidateCacheImpl creates an InvalidateCacheImpl.
func NewInvalidateCacheImpl(cache ToolResultCache, logger *log.Logger) InvalidateCacheImpl {
	return InvalidateCacheImpl{cache: cache, logger: logger}
}

// Execute validates the glob pattern before touching the store.
func (ic InvalidateCacheImpl) Execute(ctx context.Context, pattern string) (int, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	if err := domain.ValidateKeyPattern(pattern); err != nil {
		telemetry.RecordErrorAndStatus(span, err)
		return 0, err
	}

	deleted, err := ic.cache.Invalidate(spanCtx, pattern)
	if telemetry.RecordErrorAndStatus(span, err) {
		return 0, err
	}
	ic.logger.Printf("InvalidateCache: removed %d entries matching %q", deleted, pattern)
	return deleted, nil
}

// InitInvalidateCache registers the InvalidateCache use case.
type InitInvalidateCache struct {
	Cache  ToolResultCache `resolve:""`
	Logger *log.Logger     `resolve:""`
}

// Initialize registers the InvalidateCache implementation in the dependency container.
func (i InitInvalidateCache) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[InvalidateCache](NewInvalidateCacheImpl(i.Cache, i.Logger))
	return ctx, nil
}

package usecases

import (
	"context"
	"log"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
	"go.opentelemetry.io/otel/attribute"
)

// SweepCache removes expired entries from stores that do not expire them natively.
type SweepCache interface {
	Execute(ctx context.Context) (int, error)
}

// SweepCacheImpl implements SweepCache.
type SweepCacheImpl struct {
	sweeper domain.CacheSweeper
	logger  *log.Logger
}

// NewSweepCacheImpl creates a SweepCacheImpl.
func NewSweepCacheImpl(sweeper domain.CacheSweeper, logger *log.Logger) SweepCacheImpl {
	return SweepCacheImpl{sweeper: sweeper, logger: logger}
}

// Execute purges expired entries and returns how many were removed.
func (sc SweepCacheImpl) Execute(ctx context.Context) (int, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	purged, err := sc.sweeper.PurgeExpired(spanCtx)
	if telemetry.RecordErrorAndStatus(span, err) {
		return 0, err
	}
	span.SetAttributes(attribute.Int("cache.purged", purged))
	if purged > 0 {
		sc.logger.Printf("SweepCache: purged %d expired entries", purged)
	}
	return purged, nil
}

// InitSweepCache registers the SweepCache use case.
type InitSweepCache struct {
	Sweeper domain.CacheSweeper `resolve:""`
	Logger  *log.Logger         `resolve:""`
}

// Initialize registers the SweepCache implementation in the dependency container.
func (i InitSweepCache) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[SweepCache](NewSweepCacheImpl(i.Sweeper, i.Logger))
	return ctx, nil
}

package workers

import (
	"context"
	"log"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/usecases"
)

// CacheSweeper is a runnable that periodically removes expired cache entries.
type CacheSweeper struct {
	SweepCache          usecases.SweepCache `resolve:""`
	Logger              *log.Logger         `resolve:""`
	Interval            time.Duration       `config:"CACHE_SWEEP_INTERVAL" default:"1m"`
	workerExecutionChan chan struct{}
}

// Run sweeps the cache on every tick until ctx is done.
func (cs CacheSweeper) Run(ctx context.Context) error {
	cs.Logger.Println("CacheSweeper: running...")
	ticker := time.NewTicker(cs.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := cs.SweepCache.Execute(ctx); err != nil {
				cs.Logger.Printf("CacheSweeper: error sweeping cache: %v", err)
			}
			if cs.workerExecutionChan != nil {
				select {
				case cs.workerExecutionChan <- struct{}{}:
				case <-ctx.Done():
				}
			}
		case <-ctx.Done():
			cs.Logger.Println("CacheSweeper: stopping...")
			return nil
		}
	}
}

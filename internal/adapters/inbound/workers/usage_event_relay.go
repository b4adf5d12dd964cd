package workers

import (
	"context"
	"log"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/usecases"
)

// UsageEventRelay is a runnable that drains the usage event queue and publishes the events.
type UsageEventRelay struct {
	Relay               usecases.RelayUsageEvents `resolve:""`
	Logger              *log.Logger               `resolve:""`
	Interval            time.Duration             `config:"USAGE_EVENT_FLUSH_INTERVAL" default:"1s"`
	workerExecutionChan chan struct{}
}

// Run publishes queued events periodically and flushes what is left on shutdown.
func (r UsageEventRelay) Run(ctx context.Context) error {
	r.Logger.Println("UsageEventRelay: running...")
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := r.Relay.Execute(ctx); err != nil {
				r.Logger.Printf("UsageEventRelay: error publishing batch: %v", err)
			}
			if r.workerExecutionChan != nil {
				select {
				case r.workerExecutionChan <- struct{}{}:
				case <-ctx.Done():
				}
			}
		case <-ctx.Done():
			r.flush()
			r.Logger.Println("UsageEventRelay: stopping...")
			return nil
		}
	}
}

// flush publishes the remaining events with a short deadline detached from the cancelled run context.
func (r UsageEventRelay) flush() {
	flushCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for flushCtx.Err() == nil {
		n, err := r.Relay.Execute(flushCtx)
		if err != nil {
			r.Logger.Printf("UsageEventRelay: error flushing events: %v", err)
			return
		}
		if n == 0 {
			return
		}
	}
}

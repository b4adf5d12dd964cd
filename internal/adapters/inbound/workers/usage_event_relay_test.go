package workers

import (
	"context"
	"log"
	"testing"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/usecases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUsageEventRelay_Run(t *testing.T) {
	relay := usecases.NewMockRelayUsageEvents(t)

	relay.EXPECT().Execute(mock.Anything).Return(0, assert.AnError).Once()
	relay.EXPECT().Execute(mock.Anything).Return(3, nil).Once()
	relay.EXPECT().Execute(mock.Anything).Return(0, nil).Maybe()

	cancelCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalChan := make(chan struct{})
	done := make(chan struct{})

	r := UsageEventRelay{
		Relay:               relay,
		Logger:              log.Default(),
		Interval:            2 * time.Millisecond,
		workerExecutionChan: signalChan,
	}

	go func() {
		defer close(done)
		err := r.Run(cancelCtx)
		assert.NoError(t, err)
	}()

	for range 2 {
		select {
		case <-signalChan:
			// Received signal that a batch was processed
		case <-time.After(1 * time.Second):
			t.Fatal("timeout waiting for usage event relay to process batch")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("usage event relay did not stop")
	}
}

func TestUsageEventRelay_FlushesOnShutdown(t *testing.T) {
	relay := usecases.NewMockRelayUsageEvents(t)
	relay.EXPECT().Execute(mock.Anything).Return(100, nil).Once()
	relay.EXPECT().Execute(mock.Anything).Return(7, nil).Once()
	relay.EXPECT().Execute(mock.Anything).Return(0, nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := UsageEventRelay{
		Relay:    relay,
		Logger:   log.Default(),
		Interval: time.Hour,
	}
	assert.NoError(t, r.Run(ctx))
}

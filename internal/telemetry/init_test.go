package telemetry

import (
	"context"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitOpenTelemetry_Initialize_Close(t *testing.T) {
	init := &InitOpenTelemetry{Logger: log.New(&strings.Builder{}, "", 0), TracesEndpoint: "-", MetricsEndpoint: "-"}
	ctx := context.Background()
	ctx, err := init.Initialize(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, ctx)
	init.Close()
}

func TestInitHttpClient_Initialize(t *testing.T) {
	tests := map[string]struct {
		maxAttempts int
		expectErr   bool
	}{
		"valid":         {maxAttempts: 3},
		"zero-attempts": {maxAttempts: 0, expectErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			init := InitHttpClient{Logger: log.New(&strings.Builder{}, "", 0), MaxAttempts: tt.maxAttempts}
			ctx, err := init.Initialize(context.Background())
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, ctx)
		})
	}
}

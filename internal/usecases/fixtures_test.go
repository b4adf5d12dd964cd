package usecases

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/catalog"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/tools"
	"github.com/stretchr/testify/require"
)

var (
	fixedTime  = time.Date(2026, 1, 24, 15, 0, 0, 0, time.UTC)
	discardLog = log.New(io.Discard, "", 0)
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: fixedTime}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// handlerFunc adapts a function into a domain.ToolHandler.
type handlerFunc struct {
	name string
	fn   func(ctx context.Context, call domain.ToolCall) (json.RawMessage, error)
}

func (h handlerFunc) Name() string { return h.name }

func (h handlerFunc) Execute(ctx context.Context, call domain.ToolCall) (json.RawMessage, error) {
	return h.fn(ctx, call)
}

// newTestCatalog returns the builtin catalog plus a slow tool used for timeout tests.
func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	defs := append(catalog.BuiltinDefinitions(), domain.ToolDefinition{
		Name:        "slow_tool",
		Category:    "test",
		Description: "Sleeps until its context is done.",
		Timeout:     20 * time.Millisecond,
	})
	c, err := catalog.New(catalog.Options{DefaultTimeout: 30 * time.Second, DefaultCacheTTL: 5 * time.Minute}, defs, nil)
	require.NoError(t, err)
	return c
}

// newBuiltinFakeRegistry serves every builtin tool with an empty object payload.
func newBuiltinFakeRegistry(calls interface{ Add(int32) int32 }) domain.ToolHandlerRegistry {
	var handlers []domain.ToolHandler
	for _, def := range catalog.BuiltinDefinitions() {
		handlers = append(handlers, handlerFunc{name: def.Name, fn: func(context.Context, domain.ToolCall) (json.RawMessage, error) {
			calls.Add(1)
			return json.RawMessage(`{}`), nil
		}})
	}
	return tools.NewRegistry(handlers...)
}

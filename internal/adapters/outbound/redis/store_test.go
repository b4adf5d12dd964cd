package redis

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont/depend"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unreachableClient() *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestStore_UnreachableServer(t *testing.T) {
	client := unreachableClient()
	defer client.Close() //nolint:errcheck
	store := NewStore(client, "test:")
	ctx := context.Background()

	_, _, err := store.Get(ctx, "k")
	assert.Error(t, err)

	assert.Error(t, store.Set(ctx, "k", []byte("v"), time.Minute))

	_, err = store.Del(ctx, "k")
	assert.Error(t, err)

	_, err = store.Keys(ctx, "*")
	assert.Error(t, err)
}

func TestStore_NoRoundTrip(t *testing.T) {
	client := unreachableClient()
	defer client.Close() //nolint:errcheck
	store := NewStore(client, "test:")
	ctx := context.Background()

	n, err := store.Del(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.Error(t, store.Set(ctx, "k", []byte("v"), 0))

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, purged)
}

func TestInitCacheStore_Initialize(t *testing.T) {
	logger := log.New(io.Discard, "", 0)

	tests := map[string]struct {
		init            *InitCacheStore
		expectedBackend bool
	}{
		"other-backend-skipped": {
			init: &InitCacheStore{Logger: logger, Backend: "memory"},
		},
		"unreachable-still-registered": {
			init:            &InitCacheStore{Logger: logger, Backend: "redis", Addr: "127.0.0.1:1", Password: "-"},
			expectedBackend: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			depend.ClearContainer()
			defer depend.ClearContainer()

			_, err := tt.init.Initialize(context.Background())
			require.NoError(t, err)
			defer tt.init.Close()

			store, err := depend.Resolve[domain.CacheStore]()
			if !tt.expectedBackend {
				assert.Error(t, err)
				assert.Nil(t, tt.init.client)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, &Store{}, store)

			_, found, err := store.Get(context.Background(), "tool:list_bases:h")
			assert.Error(t, err)
			assert.False(t, found)
		})
	}
}

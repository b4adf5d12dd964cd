// Package redis provides the Redis backed cache store.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const scanCount = 100

var (
	_ domain.CacheStore   = (*Store)(nil)
	_ domain.CacheSweeper = (*Store)(nil)
)

// Store keeps cache entries in Redis. Expiry is delegated to key TTLs.
type Store struct {
	client goredis.UniversalClient
	prefix string
}

// NewStore creates a Store namespacing every key with prefix.
func NewStore(client goredis.UniversalClient, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	value, err := s.client.Get(spanCtx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if telemetry.RecordErrorAndStatus(span, err) {
		return nil, false, err
	}
	return value, true, nil
}

// Set stores value under key for ttl.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", ttl)
	}
	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	err := s.client.Set(spanCtx, s.prefix+key, value, ttl).Err()
	if telemetry.RecordErrorAndStatus(span, err) {
		return err
	}
	return nil
}

// Del deletes keys and returns how many existed.
func (s *Store) Del(ctx context.Context, keys ...string) (int, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(attribute.Int("cache.keys", len(keys))))
	defer span.End()

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.prefix + k
	}
	n, err := s.client.Del(spanCtx, prefixed...).Result()
	if telemetry.RecordErrorAndStatus(span, err) {
		return 0, err
	}
	return int(n), nil
}

// Keys scans the keyspace for keys matching the glob pattern.
func (s *Store) Keys(ctx context.Context, pattern string) ([]string, error) {
	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(attribute.String("cache.pattern", pattern)))
	defer span.End()

	keys := []string{}
	iter := s.client.Scan(spanCtx, 0, s.prefix+pattern, scanCount).Iterator()
	for iter.Next(spanCtx) {
		keys = append(keys, iter.Val()[len(s.prefix):])
	}
	if err := iter.Err(); telemetry.RecordErrorAndStatus(span, err) {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

// PurgeExpired is a no-op: Redis evicts expired keys itself.
func (s *Store) PurgeExpired(context.Context) (int, error) {
	return 0, nil
}

// InitCacheStore connects to Redis when CACHE_BACKEND is redis.
type InitCacheStore struct {
	Logger    *log.Logger `resolve:""`
	Backend   string      `config:"CACHE_BACKEND" default:"memory"`
	Addr      string      `config:"REDIS_ADDR" default:"localhost:6379"`
	Password  string      `config:"REDIS_PASSWORD" default:"-"`
	DB        int         `config:"REDIS_DB" default:"0"`
	KeyPrefix string      `config:"REDIS_KEY_PREFIX" default:"toolgateway:"`
	client    *goredis.Client
}

// Initialize registers domain.CacheStore and domain.CacheSweeper. An unreachable
// server is only logged: the client reconnects on demand and failed calls are cache misses.
func (i *InitCacheStore) Initialize(ctx context.Context) (context.Context, error) {
	if i.Backend != "redis" {
		return ctx, nil
	}
	opts := &goredis.Options{Addr: i.Addr, DB: i.DB}
	if i.Password != "-" {
		opts.Password = i.Password
	}
	i.client = goredis.NewClient(opts)

	if err := i.client.Ping(ctx).Err(); err != nil {
		i.Logger.Printf("InitCacheStore: redis at %s is unreachable, calls miss the cache until it recovers: %v", i.Addr, err)
	}

	store := NewStore(i.client, i.KeyPrefix)
	depend.Register[domain.CacheStore](store)
	depend.Register[domain.CacheSweeper](store)
	i.Logger.Printf("InitCacheStore: using redis cache backend at %s", i.Addr)
	return ctx, nil
}

// Close closes the Redis client.
func (i *InitCacheStore) Close() {
	if i.client == nil {
		return
	}
	if err := i.client.Close(); err != nil {
		i.Logger.Printf("InitCacheStore: failed to close redis client: %v", err)
	}
}

package usecases

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const cacheKeyPrefix = "tool:"

// ToolResultCache caches successful tool payloads. Store failures degrade to misses.
type ToolResultCache interface {
	// Key derives the cache key of a call. An empty principal yields a shared key.
	Key(tool string, args map[string]any, principal string) (string, error)
	// Get returns the live entry stored under key and refreshes its TTL.
	Get(ctx context.Context, key string) (domain.CacheEntry, bool)
	// Set stores entry under its key for ttl.
	Set(ctx context.Context, entry domain.CacheEntry, ttl time.Duration)
	// Invalidate deletes every entry whose key matches the glob pattern, all entries when empty.
	Invalidate(ctx context.Context, pattern string) (int, error)
}

// ToolResultCacheImpl implements ToolResultCache on a domain.CacheStore.
type ToolResultCacheImpl struct {
	store        domain.CacheStore
	timeProvider domain.CurrentTimeProvider
	logger       *log.Logger
}

// NewToolResultCacheImpl creates a cache over store.
func NewToolResultCacheImpl(store domain.CacheStore, timeProvider domain.CurrentTimeProvider, logger *log.Logger) ToolResultCacheImpl {
	return ToolResultCacheImpl{
		store:        store,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Key returns "tool:" + scope + tool + ":" + sha256 of the canonical arguments,
// where scope is "p:<principal>:" for principal-scoped entries.
func (c ToolResultCacheImpl) Key(tool string, args map[string]any, principal string) (string, error) {
	hash, err := ArgumentsHash(args)
	if err != nil {
		return "", err
	}
	scope := ""
	if principal != "" {
		scope = "p:" + principal + ":"
	}
	return cacheKeyPrefix + scope + tool + ":" + hash, nil
}

// ArgumentsHash hashes the canonical JSON form of args. encoding/json writes map
// keys sorted at every level, so insertion order never changes the hash.
func ArgumentsHash(args map[string]any) (string, error) {
	if args == nil {
		args = map[string]any{}
	}
	canonical, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize arguments: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// Get returns the entry stored under key. A hit increments the hit count and
// re-applies the entry's TTL.
func (c ToolResultCacheImpl) Get(ctx context.Context, key string) (domain.CacheEntry, bool) {
	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	raw, found, err := c.store.Get(spanCtx, key)
	if err != nil {
		telemetry.RecordErrorAndStatus(span, err)
		c.logger.Printf("ToolResultCache: get %s failed, treating as miss: %v", key, err)
		return domain.CacheEntry{}, false
	}
	if !found {
		span.SetAttributes(attribute.Bool("cache.hit", false))
		return domain.CacheEntry{}, false
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		c.logger.Printf("ToolResultCache: dropping undecodable entry %s: %v", key, err)
		c.delete(spanCtx, key)
		return domain.CacheEntry{}, false
	}

	now := c.timeProvider.Now()
	if entry.Expired(now) {
		c.delete(spanCtx, key)
		span.SetAttributes(attribute.Bool("cache.hit", false))
		return domain.CacheEntry{}, false
	}

	entry.HitCount++
	if entry.TTL > 0 {
		entry.ExpiresAt = now.Add(entry.TTL)
		c.write(spanCtx, entry, entry.TTL)
	}
	span.SetAttributes(attribute.Bool("cache.hit", true))
	return entry, true
}

// Set stores entry with an absolute expiry of now+ttl.
func (c ToolResultCacheImpl) Set(ctx context.Context, entry domain.CacheEntry, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(attribute.String("cache.key", entry.Key)))
	defer span.End()

	now := c.timeProvider.Now()
	entry.CreatedAt = now
	entry.ExpiresAt = now.Add(ttl)
	entry.TTL = ttl
	c.write(spanCtx, entry, ttl)
}

// Invalidate deletes every entry matching pattern and returns how many were removed.
func (c ToolResultCacheImpl) Invalidate(ctx context.Context, pattern string) (int, error) {
	if pattern == "" {
		pattern = "*"
	}
	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(attribute.String("cache.pattern", pattern)))
	defer span.End()

	keys, err := c.store.Keys(spanCtx, pattern)
	if telemetry.RecordErrorAndStatus(span, err) {
		return 0, fmt.Errorf("failed to list cache keys: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}
	deleted, err := c.store.Del(spanCtx, keys...)
	if telemetry.RecordErrorAndStatus(span, err) {
		return 0, fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return deleted, nil
}

// CompactPayload returns payload in the form a cache hit replays it: insignificant
// whitespace removed, no HTML escaping.
func CompactPayload(payload json.RawMessage) (json.RawMessage, error) {
	if payload == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, payload); err != nil {
		return nil, fmt.Errorf("tool payload is not valid JSON: %w", err)
	}
	return buf.Bytes(), nil
}

func (c ToolResultCacheImpl) write(ctx context.Context, entry domain.CacheEntry, ttl time.Duration) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entry); err != nil {
		c.logger.Printf("ToolResultCache: failed to encode entry %s: %v", entry.Key, err)
		return
	}
	if err := c.store.Set(ctx, entry.Key, buf.Bytes(), ttl); err != nil {
		c.logger.Printf("ToolResultCache: set %s failed: %v", entry.Key, err)
	}
}

func (c ToolResultCacheImpl) delete(ctx context.Context, key string) {
	if _, err := c.store.Del(ctx, key); err != nil {
		c.logger.Printf("ToolResultCache: delete %s failed: %v", key, err)
	}
}

// InitToolResultCache registers the ToolResultCache.
type InitToolResultCache struct {
	Store        domain.CacheStore          `resolve:""`
	TimeProvider domain.CurrentTimeProvider `resolve:""`
	Logger       *log.Logger                `resolve:""`
}

// Initialize registers the ToolResultCache in the dependency container.
func (i InitToolResultCache) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[ToolResultCache](NewToolResultCacheImpl(i.Store, i.TimeProvider, i.Logger))
	return ctx, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const cacheEntriesTable = "cache_entries"

var (
	_ domain.CacheStore   = CacheStore{}
	_ domain.CacheSweeper = CacheStore{}
)

// CacheStore keeps cache entries in the cache_entries table.
type CacheStore struct {
	sb           squirrel.StatementBuilderType
	timeProvider domain.CurrentTimeProvider
}

// NewCacheStore creates a CacheStore running statements on br.
func NewCacheStore(br squirrel.BaseRunner, timeProvider domain.CurrentTimeProvider) CacheStore {
	return CacheStore{
		sb:           squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).RunWith(br),
		timeProvider: timeProvider,
	}
}

// Get returns the payload stored under key if it has not expired.
func (cs CacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	var payload []byte
	err := cs.sb.
		Select("payload").
		From(cacheEntriesTable).
		Where(squirrel.Eq{"cache_key": key}).
		Where(squirrel.Gt{"expires_at": cs.timeProvider.Now()}).
		QueryRowContext(spanCtx).
		Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if telemetry.RecordErrorAndStatus(span, err) {
		return nil, false, fmt.Errorf("failed to get cache entry: %w", err)
	}
	return payload, true, nil
}

// Set upserts value under key for ttl.
func (cs CacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", ttl)
	}
	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	now := cs.timeProvider.Now()
	_, err := cs.sb.
		Insert(cacheEntriesTable).
		Columns("cache_key", "payload", "expires_at", "updated_at").
		Values(key, value, now.Add(ttl), now).
		Suffix("ON CONFLICT (cache_key) DO UPDATE SET payload = EXCLUDED.payload, expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at").
		ExecContext(spanCtx)
	if telemetry.RecordErrorAndStatus(span, err) {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}
	return nil
}

// Del deletes keys and returns how many rows were removed.
func (cs CacheStore) Del(ctx context.Context, keys ...string) (int, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(attribute.Int("cache.keys", len(keys))))
	defer span.End()

	res, err := cs.sb.
		Delete(cacheEntriesTable).
		Where(squirrel.Eq{"cache_key": keys}).
		ExecContext(spanCtx)
	if telemetry.RecordErrorAndStatus(span, err) {
		return 0, fmt.Errorf("failed to delete cache entries: %w", err)
	}
	n, err := res.RowsAffected()
	if telemetry.RecordErrorAndStatus(span, err) {
		return 0, fmt.Errorf("failed to count deleted cache entries: %w", err)
	}
	return int(n), nil
}

// Keys returns the live keys matching the glob pattern.
func (cs CacheStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	if err := domain.ValidateKeyPattern(pattern); err != nil {
		return nil, err
	}
	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(attribute.String("cache.pattern", pattern)))
	defer span.End()

	rows, err := cs.sb.
		Select("cache_key").
		From(cacheEntriesTable).
		Where(squirrel.Like{"cache_key": globToLike(pattern)}).
		Where(squirrel.Gt{"expires_at": cs.timeProvider.Now()}).
		OrderBy("cache_key").
		QueryContext(spanCtx)
	if telemetry.RecordErrorAndStatus(span, err) {
		return nil, fmt.Errorf("failed to list cache keys: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); telemetry.RecordErrorAndStatus(span, err) {
			return nil, fmt.Errorf("failed to scan cache key: %w", err)
		}
		// LIKE narrows the scan; the glob decides.
		if domain.MatchKey(pattern, key) {
			keys = append(keys, key)
		}
	}
	if err := rows.Err(); telemetry.RecordErrorAndStatus(span, err) {
		return nil, fmt.Errorf("failed to iterate cache keys: %w", err)
	}
	return keys, nil
}

// PurgeExpired deletes every expired row.
func (cs CacheStore) PurgeExpired(ctx context.Context) (int, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	res, err := cs.sb.
		Delete(cacheEntriesTable).
		Where(squirrel.LtOrEq{"expires_at": cs.timeProvider.Now()}).
		ExecContext(spanCtx)
	if telemetry.RecordErrorAndStatus(span, err) {
		return 0, fmt.Errorf("failed to purge expired cache entries: %w", err)
	}
	n, err := res.RowsAffected()
	if telemetry.RecordErrorAndStatus(span, err) {
		return 0, fmt.Errorf("failed to count purged cache entries: %w", err)
	}
	return int(n), nil
}

// globToLike converts a glob into a LIKE pattern matching at least the same keys.
func globToLike(pattern string) string {
	var b strings.Builder
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			escaped = false
			writeLikeLiteral(&b, r)
		case r == '\\':
			escaped = true
		case r == '*':
			b.WriteByte('%')
		case r == '?':
			b.WriteByte('_')
		default:
			writeLikeLiteral(&b, r)
		}
	}
	return b.String()
}

func writeLikeLiteral(b *strings.Builder, r rune) {
	if r == '%' || r == '_' || r == '\\' {
		b.WriteByte('\\')
	}
	b.WriteRune(r)
}

package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/match"
)

// CacheStore is the key-value store backing the tool result cache.
type CacheStore interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Del deletes keys and returns how many existed.
	Del(ctx context.Context, keys ...string) (int, error)
	// Keys returns the keys matching a glob pattern.
	Keys(ctx context.Context, pattern string) ([]string, error)
}

// CacheSweeper is implemented by stores that do not expire entries on their own.
type CacheSweeper interface {
	PurgeExpired(ctx context.Context) (int, error)
}

// CacheEntry is a cached tool payload.
type CacheEntry struct {
	Key           string          `json:"key"`
	ToolName      string          `json:"tool_name"`
	ArgumentsHash string          `json:"arguments_hash"`
	Payload       json.RawMessage `json:"payload"`
	CreatedAt     time.Time       `json:"created_at"`
	ExpiresAt     time.Time       `json:"expires_at"`
	HitCount      int64           `json:"hit_count"`
	PrincipalID   string          `json:"principal_id,omitempty"`
	TTL           time.Duration   `json:"ttl"`
}

// Expired reports whether the entry is stale at now.
func (e CacheEntry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// MatchKey reports whether key matches a cache key pattern. '*' matches any run of
// characters, separators included, '?' matches one character and '\' escapes the
// next one, as Redis SCAN MATCH does.
func MatchKey(pattern, key string) bool {
	return match.Match(key, pattern)
}

// ValidateKeyPattern rejects patterns that not every store evaluates the same way.
func ValidateKeyPattern(pattern string) error {
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '[' || r == ']':
			return NewValidationErr(fmt.Sprintf("invalid cache key pattern %q: character classes are not supported", pattern))
		}
	}
	if escaped {
		return NewValidationErr(fmt.Sprintf("invalid cache key pattern %q: trailing escape", pattern))
	}
	return nil
}

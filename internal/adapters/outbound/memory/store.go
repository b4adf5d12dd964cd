// Package memory provides the in-process cache store.
package memory

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont/depend"
)

var (
	_ domain.CacheStore   = (*Store)(nil)
	_ domain.CacheSweeper = (*Store)(nil)
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Store is a map-backed cache store with lazy and swept expiry.
type Store struct {
	mu           sync.RWMutex
	entries      map[string]entry
	timeProvider domain.CurrentTimeProvider
}

// NewStore creates an empty Store.
func NewStore(timeProvider domain.CurrentTimeProvider) *Store {
	return &Store{
		entries:      make(map[string]entry),
		timeProvider: timeProvider,
	}
}

// Get returns the value stored under key. Expired entries are removed and reported missing.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	now := s.timeProvider.Now()

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !now.Before(e.expiresAt) {
		s.mu.Lock()
		if cur, ok := s.entries[key]; ok && !now.Before(cur.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

// Set stores a copy of value under key for ttl.
func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", ttl)
	}
	e := entry{
		value:     append([]byte(nil), value...),
		expiresAt: s.timeProvider.Now().Add(ttl),
	}

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}

// Del removes keys and returns how many were present.
func (s *Store) Del(_ context.Context, keys ...string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for _, k := range keys {
		if _, ok := s.entries[k]; ok {
			delete(s.entries, k)
			deleted++
		}
	}
	return deleted, nil
}

// Keys returns the live keys matching the glob pattern, sorted.
func (s *Store) Keys(_ context.Context, pattern string) ([]string, error) {
	if err := domain.ValidateKeyPattern(pattern); err != nil {
		return nil, err
	}
	now := s.timeProvider.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := []string{}
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			continue
		}
		if domain.MatchKey(pattern, k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// PurgeExpired removes every expired entry and returns how many were removed.
func (s *Store) PurgeExpired(_ context.Context) (int, error) {
	now := s.timeProvider.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
			purged++
		}
	}
	return purged, nil
}

// Len returns the number of stored entries, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// NopStore never stores anything. It backs CACHE_BACKEND=none.
type NopStore struct{}

// Get always misses.
func (NopStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards the value.
func (NopStore) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Del deletes nothing.
func (NopStore) Del(context.Context, ...string) (int, error) { return 0, nil }

// Keys matches nothing.
func (NopStore) Keys(context.Context, string) ([]string, error) { return []string{}, nil }

// PurgeExpired purges nothing.
func (NopStore) PurgeExpired(context.Context) (int, error) { return 0, nil }

// InitCacheStore registers the in-process store when CACHE_BACKEND is memory or none.
type InitCacheStore struct {
	Logger       *log.Logger                `resolve:""`
	TimeProvider domain.CurrentTimeProvider `resolve:""`
	Backend      string                     `config:"CACHE_BACKEND" default:"memory"`
}

// Initialize registers domain.CacheStore and domain.CacheSweeper.
func (i InitCacheStore) Initialize(ctx context.Context) (context.Context, error) {
	switch i.Backend {
	case "memory":
		store := NewStore(i.TimeProvider)
		depend.Register[domain.CacheStore](store)
		depend.Register[domain.CacheSweeper](store)
	case "none":
		depend.Register[domain.CacheStore](NopStore{})
		depend.Register[domain.CacheSweeper](NopStore{})
	case "redis", "postgres":
		return ctx, nil
	default:
		return ctx, fmt.Errorf("unknown CACHE_BACKEND %q", i.Backend)
	}
	i.Logger.Printf("InitCacheStore: using %s cache backend", i.Backend)
	return ctx, nil
}

package ttlstore

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
)

var (
	_ ReadWriter = &Store{}
	_ Deleter    = &Store{}
	_ Walker     = &Store{}
)

// Store is a capacity-bounded in-memory cache with optional expiration of entries.
//
// All operations are serialized with a single mutex.
// Please use NewStore to create an instance and Close to release it.
type Store struct {
	mu   sync.Mutex
	data *BoundedMap[entry]

	config  Config
	log     ctxd.Logger
	stat    stats.Tracker
	sweeper *sweeper
	loader  loader

	closeOnce sync.Once
}

// NewStore creates an instance of store and starts background sweep of expired entries.
//
// Capacity and cleanup interval must be positive,
// optional configuration can be provided with functional options.
func NewStore(capacity int, cleanupInterval time.Duration, options ...func(cfg *Config)) (*Store, error) {
	if cleanupInterval <= 0 {
		return nil, ErrInvalidInterval
	}

	cfg := Config{}
	for _, option := range options {
		option(&cfg)
	}

	reportItems := cfg.Stats != nil

	cfg.setDefaults()

	data, err := NewBoundedMap[entry](capacity, cfg.Policy)
	if err != nil {
		return nil, err
	}

	s := &Store{
		data:   data,
		config: cfg,
		log:    cfg.Logger,
		stat:   cfg.Stats,
	}

	s.sweeper = newSweeper(s, cleanupInterval, reportItems)
	s.sweeper.start()

	return s, nil
}

// Name returns store name.
func (s *Store) Name() string {
	return s.config.Name
}

// Capacity returns maximum number of entries.
func (s *Store) Capacity() int {
	return s.data.Capacity()
}

// Set stores value that never expires.
func (s *Store) Set(ctx context.Context, key string, value interface{}) {
	s.write(ctx, key, value, 0, false)
}

// SetWithTTL stores value that expires after ttl.
//
// Non-positive ttl makes value expire immediately.
func (s *Store) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	s.write(ctx, key, value, ttl, true)
}

// Write stores value with TTL from context (see WithTTL) or Config.TimeToLive.
//
// Value never expires if neither is set, error is always nil.
func (s *Store) Write(ctx context.Context, key string, value interface{}) error {
	if ttl, ok := TTL(ctx); ok {
		s.write(ctx, key, value, ttl, true)

		return nil
	}

	if s.config.TimeToLive > 0 {
		s.write(ctx, key, value, s.config.TimeToLive, true)

		return nil
	}

	s.write(ctx, key, value, 0, false)

	return nil
}

func (s *Store) write(ctx context.Context, key string, value interface{}, ttl time.Duration, expires bool) {
	e := entry{K: key, V: value, expires: expires}

	s.mu.Lock()

	if expires {
		e.E = s.config.Clock()

		if ttl > 0 {
			e.E = e.E.Add(ttl)
		}
	}

	evictedKey, evicted := s.data.Insert(key, e)
	s.mu.Unlock()

	s.log.Debug(ctx, "wrote to cache",
		"name", s.config.Name,
		"key", key,
		"ttl", ttl,
		"expires", expires,
	)
	s.stat.Add(ctx, MetricWrite, 1, "name", s.config.Name)

	if evicted {
		s.log.Debug(ctx, "evicted cache entry",
			"name", s.config.Name,
			"key", evictedKey,
			"policy", s.config.Policy.String(),
		)
		s.stat.Add(ctx, MetricEvict, 1, "name", s.config.Name)
	}
}

// Get returns value if it is present and not expired.
//
// Expired entry is removed.
func (s *Store) Get(ctx context.Context, key string) (interface{}, bool) {
	e, err := s.lookup(ctx, key)
	if err != nil {
		return nil, false
	}

	return e.V, true
}

// Read returns value or error.
//
// Error is ErrNotFound for missing entry (or context with WithSkipRead),
// for expired entry error matches ErrExpired and implements ExpiredError.
func (s *Store) Read(ctx context.Context, key string) (interface{}, error) {
	if SkipRead(ctx) {
		return nil, ErrNotFound
	}

	e, err := s.lookup(ctx, key)
	if err != nil {
		return nil, err
	}

	return e.V, nil
}

func (s *Store) lookup(ctx context.Context, key string) (entry, error) {
	s.mu.Lock()
	e, found := s.data.Lookup(key)

	expired := found && e.expiredAt(s.config.Clock())
	if expired {
		s.data.Remove(key)
	}
	s.mu.Unlock()

	if !found {
		s.log.Debug(ctx, "cache miss",
			"name", s.config.Name,
			"key", key)
		s.stat.Add(ctx, MetricMiss, 1, "name", s.config.Name)

		return entry{}, ErrNotFound
	}

	if expired {
		s.log.Debug(ctx, "cache key expired",
			"name", s.config.Name,
			"key", key,
			"expireAt", e.E)
		s.stat.Add(ctx, MetricExpired, 1, "name", s.config.Name)

		return e, errExpired{entry: e}
	}

	s.log.Debug(ctx, "cache hit",
		"name", s.config.Name,
		"key", key)
	s.stat.Add(ctx, MetricHit, 1, "name", s.config.Name)

	return e, nil
}

// GetAs returns value of type T if it is present and not expired.
//
// Value of another type is treated as missing and is kept in store.
// Stored nil value is found as zero T when T is an interface type.
func GetAs[T any](ctx context.Context, s *Store, key string) (T, bool) {
	var zero T

	v, found := s.Get(ctx, key)
	if !found {
		return zero, false
	}

	t, ok := as[T](v)
	if !ok {
		s.typeMismatch(ctx, key, v, zero)

		return zero, false
	}

	return t, true
}

// ReadAs returns value of type T or error.
//
// In addition to errors of Read, ErrTypeMismatch is returned for value of another type.
// Stored nil value is returned as zero T when T is an interface type.
func ReadAs[T any](ctx context.Context, s *Store, key string) (T, error) {
	var zero T

	v, err := s.Read(ctx, key)
	if err != nil {
		return zero, err
	}

	t, ok := as[T](v)
	if !ok {
		s.typeMismatch(ctx, key, v, zero)

		return zero, ErrTypeMismatch
	}

	return t, nil
}

// as asserts v to T, nil v matches any interface type.
func as[T any](v interface{}) (T, bool) {
	if v == nil {
		var zero T

		return zero, reflect.TypeOf((*T)(nil)).Elem().Kind() == reflect.Interface
	}

	t, ok := v.(T)

	return t, ok
}

func (s *Store) typeMismatch(ctx context.Context, key string, v interface{}, expected interface{}) {
	s.log.Debug(ctx, "cache value type mismatch",
		"name", s.config.Name,
		"key", key,
		"type", fmt.Sprintf("%T", v),
		"expected", fmt.Sprintf("%T", expected))
	s.stat.Add(ctx, MetricTypeMismatch, 1, "name", s.config.Name)
}

// Remove deletes entry if it is present.
func (s *Store) Remove(ctx context.Context, key string) {
	_ = s.Delete(ctx, key) // nolint:errcheck // Missing entry is not an error here.
}

// Delete removes entry and returns ErrNotFound if it was missing.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	_, found := s.data.Remove(key)
	s.mu.Unlock()

	if !found {
		return ErrNotFound
	}

	s.log.Debug(ctx, "deleted cache entry",
		"name", s.config.Name,
		"key", key)
	s.stat.Add(ctx, MetricDelete, 1, "name", s.config.Name)

	return nil
}

// Clear deletes all entries.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	cnt := s.data.Len()
	s.data.RemoveAll()
	s.mu.Unlock()

	s.log.Important(ctx, "deleted all entries in cache",
		"name", s.config.Name,
		"count", cnt)
}

// ExpireAll marks all entries as expired, so that they are not served anymore.
func (s *Store) ExpireAll(ctx context.Context) {
	s.mu.Lock()
	now := s.config.Clock()
	cnt := s.data.Len()

	s.data.Update(func(_ string, e entry) entry {
		e.expires = true
		e.E = now

		return e
	})
	s.mu.Unlock()

	s.log.Important(ctx, "expired all entries in cache",
		"name", s.config.Name,
		"count", cnt)
}

// RemoveExpiredEntries deletes all expired entries and returns their count.
//
// Entries without expiration are kept.
func (s *Store) RemoveExpiredEntries(ctx context.Context) int {
	s.mu.Lock()
	now := s.config.Clock()
	removed := s.data.Filter(func(_ string, e entry) bool {
		return !e.expiredAt(now)
	})
	s.mu.Unlock()

	if removed > 0 {
		s.log.Debug(ctx, "removed expired cache entries",
			"name", s.config.Name,
			"count", removed)
		s.stat.Add(ctx, MetricSwept, float64(removed), "name", s.config.Name)
	}

	return removed
}

// Len returns number of entries, including expired ones that were not removed yet.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.data.Len()
}

// IsEmpty is true when store has no entries.
func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// Keys returns keys in eviction order, first key is evicted first.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.data.Keys()
}

// Walk calls walkFn for a snapshot of entries, from oldest to newest.
//
// Entries implement Expirable, walkFn is called without lock and may use the store.
func (s *Store) Walk(walkFn func(e Entry) error) (int, error) {
	s.mu.Lock()
	entries := make([]entry, 0, s.data.Len())

	s.data.Range(func(_ string, e entry) bool {
		entries = append(entries, e)

		return true
	})
	s.mu.Unlock()

	n := 0

	for _, e := range entries {
		if err := walkFn(e); err != nil {
			return n, err
		}

		n++
	}

	return n, nil
}

// Close stops background jobs and waits for the running ones to finish.
//
// Store remains usable after Close, but expired entries are only removed lazily.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.sweeper.stop()

		s.log.Debug(context.Background(), "cache closed",
			"name", s.config.Name)
	})

	return nil
}

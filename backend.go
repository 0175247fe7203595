package ttlstore

import (
	"context"
	"errors"

	"github.com/bool64/cache"
)

var (
	_ cache.ReadWriter = Backend{}
	_ cache.Deleter    = Backend{}
)

// Backend exposes Store with github.com/bool64/cache contracts.
//
// It can be used as cache.FailoverConfig.Backend to add stampede protection
// and error caching on top of the store.
type Backend struct {
	s *Store
}

// Backend returns adapter for github.com/bool64/cache.
func (s *Store) Backend() Backend {
	return Backend{s: s}
}

// Read gets value, missing and expired entries result in cache.ErrNotFound.
func (b Backend) Read(ctx context.Context, key []byte) (interface{}, error) {
	if cache.SkipRead(ctx) {
		return nil, cache.ErrNotFound
	}

	v, err := b.s.Read(ctx, string(key))
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrExpired) {
			return nil, cache.ErrNotFound
		}

		return nil, err
	}

	return v, nil
}

// Write stores value with TTL from cache.WithTTL context or with Store.Write semantics.
//
// Value is discarded for cache.SkipWriteTTL.
func (b Backend) Write(ctx context.Context, key []byte, value interface{}) error {
	ttl := cache.TTL(ctx)

	if ttl == cache.SkipWriteTTL {
		return nil
	}

	if ttl != cache.DefaultTTL {
		b.s.SetWithTTL(ctx, string(key), value, ttl)

		return nil
	}

	return b.s.Write(ctx, string(key), value)
}

// Delete removes entry, cache.ErrNotFound is returned for missing key.
func (b Backend) Delete(ctx context.Context, key []byte) error {
	if err := b.s.Delete(ctx, string(key)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return cache.ErrNotFound
		}

		return err
	}

	return nil
}

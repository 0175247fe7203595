package ttlstore

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// loader deduplicates concurrent builds of the same key.
type loader struct {
	group singleflight.Group
}

// Load returns cached value or builds and stores it.
//
// Concurrent calls for the same missing key share a single build,
// build receives a context without cancellation of the caller.
// Value is stored with ttl, non-positive ttl means no expiration.
// Build error is returned to all waiting callers and is not cached.
func (s *Store) Load(ctx context.Context, key string, ttl time.Duration, build func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	if v, found := s.Get(ctx, key); found {
		return v, nil
	}

	v, err, shared := s.loader.group.Do(key, func() (interface{}, error) {
		// Value could have been stored by a build that finished just before this one started.
		if v, found := s.Get(ctx, key); found {
			return v, nil
		}

		return s.build(ctx, key, ttl, build)
	})

	if shared {
		s.log.Debug(ctx, "shared cache build",
			"name", s.config.Name,
			"key", key)
	}

	return v, err
}

func (s *Store) build(ctx context.Context, key string, ttl time.Duration, build func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	s.log.Debug(ctx, "building cache value",
		"name", s.config.Name,
		"key", key)
	s.stat.Add(ctx, MetricBuild, 1, "name", s.config.Name)

	v, err := build(context.WithoutCancel(ctx))
	if err != nil {
		s.log.Warn(ctx, "failed to build cache value",
			"error", err,
			"name", s.config.Name,
			"key", key)
		s.stat.Add(ctx, MetricFailed, 1, "name", s.config.Name)

		return nil, err
	}

	if ttl > 0 {
		s.SetWithTTL(ctx, key, v, ttl)
	} else {
		s.Set(ctx, key, v)
	}

	return v, nil
}

// LoadAs is a typed version of Store.Load.
//
// ErrTypeMismatch is returned if cached value has another type.
func LoadAs[T any](ctx context.Context, s *Store, key string, ttl time.Duration, build func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	v, err := s.Load(ctx, key, ttl, func(ctx context.Context) (interface{}, error) {
		return build(ctx)
	})
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

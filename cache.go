package ttlstore

import (
	"context"
	"time"
)

// Reader reads from cache.
type Reader interface {
	// Read returns cached value or error.
	//
	// ErrNotFound is returned for a missing entry,
	// error matching ErrExpired (and implementing ExpiredError) for an expired one.
	Read(ctx context.Context, key string) (interface{}, error)
}

// Writer writes to cache.
type Writer interface {
	// Write stores value in cache with a given key.
	Write(ctx context.Context, key string, value interface{}) error
}

// Deleter deletes from cache.
type Deleter interface {
	// Delete removes a cache entry with a given key
	// and returns ErrNotFound for non-existent keys.
	Delete(ctx context.Context, key string) error
}

// ReadWriter reads from and writes to cache.
type ReadWriter interface {
	Reader
	Writer
}

// Entry is cache entry with key and value.
type Entry interface {
	Key() string
	Value() interface{}
}

// Expirable is cache entry with expiration.
type Expirable interface {
	// ExpireAt returns expiration time, zero time means entry does not expire.
	ExpireAt() time.Time
}

// Walker calls function for every entry in cache and fails on first error returned by that function.
//
// Count of processed entries is returned.
type Walker interface {
	Walk(func(entry Entry) error) (int, error)
}

package ttlstore

import (
	"errors"
	"time"

	"github.com/swaggest/usecase/status"
)

// SentinelError is an error.
type SentinelError string

const (
	// ErrNotFound indicates missing cache entry.
	ErrNotFound = SentinelError("missing cache item")

	// ErrExpired indicates expired cache entry.
	ErrExpired = SentinelError("expired cache item")

	// ErrInvalidCapacity indicates non-positive capacity.
	ErrInvalidCapacity = SentinelError("capacity must be positive")

	// ErrInvalidInterval indicates non-positive cleanup interval.
	ErrInvalidInterval = SentinelError("cleanup interval must be positive")

	// ErrNothingToInvalidate indicates no callbacks were added to Invalidator.
	ErrNothingToInvalidate = SentinelError("nothing to invalidate")

	// ErrAlreadyInvalidated indicates recent invalidation.
	ErrAlreadyInvalidated = SentinelError("already invalidated")
)

// ErrTypeMismatch indicates cached value of unexpected type.
var ErrTypeMismatch = status.Wrap(errors.New("cached value type mismatch"), status.FailedPrecondition)

// Error implements error.
func (e SentinelError) Error() string {
	return string(e)
}

// ExpiredError describes an entry that was found expired and removed.
type ExpiredError interface {
	error
	Value() interface{}
	ExpiredAt() time.Time
}

type errExpired struct {
	entry entry
}

func (e errExpired) Error() string {
	return ErrExpired.Error()
}

func (e errExpired) Value() interface{} {
	return e.entry.V
}

func (e errExpired) ExpiredAt() time.Time {
	return e.entry.E
}

func (e errExpired) Is(err error) bool {
	return err == ErrExpired // nolint:errorlint,goerr113 // Sentinel comparison.
}

package ttlstore

import (
	"context"
)

// NoOp is a ReadWriter stub that stores nothing, it can be used to disable caching.
type NoOp struct{}

var (
	_ ReadWriter = NoOp{}
	_ Deleter    = NoOp{}
)

// Read does not find anything.
func (NoOp) Read(_ context.Context, _ string) (interface{}, error) {
	return nil, ErrNotFound
}

// Write discards value.
func (NoOp) Write(_ context.Context, _ string, _ interface{}) error {
	return nil
}

// Delete does not find anything.
func (NoOp) Delete(_ context.Context, _ string) error {
	return ErrNotFound
}

package ttlstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bool64/ctxd"
)

// Invalidator is a registry of cache expiration triggers.
type Invalidator struct {
	mu sync.Mutex

	// SkipInterval defines minimal duration between two cache invalidations (flood protection), default 15s.
	SkipInterval time.Duration

	// Callbacks contains a list of functions to call on invalidate, for example Store.ExpireAll.
	Callbacks []func(ctx context.Context)

	// Logger receives invalidation events, can be nil.
	Logger ctxd.Logger

	lastRun time.Time
}

// Add registers callbacks.
func (i *Invalidator) Add(callbacks ...func(ctx context.Context)) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.Callbacks = append(i.Callbacks, callbacks...)
}

// Invalidate triggers cache expiration.
func (i *Invalidator) Invalidate(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if len(i.Callbacks) == 0 {
		return ErrNothingToInvalidate
	}

	if i.SkipInterval == 0 {
		i.SkipInterval = 15 * time.Second
	}

	if since := time.Since(i.lastRun); since < i.SkipInterval {
		return fmt.Errorf("%w at %s, %s did not pass",
			ErrAlreadyInvalidated, i.lastRun.String(), i.SkipInterval.String())
	}

	i.lastRun = time.Now()

	for _, cb := range i.Callbacks {
		cb(ctx)
	}

	if i.Logger != nil {
		i.Logger.Important(ctx, "caches invalidated", "count", len(i.Callbacks))
	}

	return nil
}

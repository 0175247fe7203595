package ttlstore

import (
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
)

const (
	// DefaultCapacity is a reasonable capacity for a general purpose store.
	DefaultCapacity = 1000

	// DefaultCleanupInterval is a reasonable delay between two consecutive sweeps of expired entries.
	DefaultCleanupInterval = time.Minute
)

// Config controls store instance.
type Config struct {
	// Logger is an instance of contextualized logger, default ctxd.NoOpLogger.
	Logger ctxd.Logger

	// Stats is metrics collector, default stats.NoOp.
	Stats stats.Tracker

	// Name is store instance name, used in stats and logging.
	Name string

	// Policy defines which entry is evicted on capacity overflow, default EvictOldest.
	Policy EvictionPolicy

	// TimeToLive is applied by Write when context has no TTL, default 0 (no expiration).
	TimeToLive time.Duration

	// ItemsCountReportInterval is items count metric report interval, default 1m (also for non-positive values).
	// Report is only enabled with Stats.
	ItemsCountReportInterval time.Duration

	// HeapInUseSoftLimit sets heap in use threshold when eviction of oldest entries is performed.
	//
	// Eviction is a part of background sweep, it runs at most once per sweep and
	// removes oldest entries (including non-expired) up to HeapInUseEvictFraction.
	HeapInUseSoftLimit uint64

	// HeapInUseEvictFraction is a fraction of total count of entries to be evicted (0, 1], default 0.1.
	// Values above 1 are capped to 1, non-positive values fall back to default.
	HeapInUseEvictFraction float64

	// Clock returns current time, default time.Now.
	Clock func() time.Time
}

// WithName is a functional option to set store name.
func WithName(name string) func(cfg *Config) {
	return func(cfg *Config) {
		cfg.Name = name
	}
}

// WithLogger is a functional option to set logger.
func WithLogger(logger ctxd.Logger) func(cfg *Config) {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// WithStats is a functional option to set stats tracker.
func WithStats(tracker stats.Tracker) func(cfg *Config) {
	return func(cfg *Config) {
		cfg.Stats = tracker
	}
}

// WithPolicy is a functional option to set eviction policy.
func WithPolicy(policy EvictionPolicy) func(cfg *Config) {
	return func(cfg *Config) {
		cfg.Policy = policy
	}
}

func (c *Config) setDefaults() {
	if c.Logger == nil {
		c.Logger = ctxd.NoOpLogger{}
	}

	if c.Stats == nil {
		c.Stats = stats.NoOp{}
	}

	if c.ItemsCountReportInterval <= 0 {
		c.ItemsCountReportInterval = time.Minute
	}

	if c.HeapInUseEvictFraction <= 0 {
		c.HeapInUseEvictFraction = 0.1
	}

	if c.HeapInUseEvictFraction > 1 {
		c.HeapInUseEvictFraction = 1
	}

	if c.Clock == nil {
		c.Clock = time.Now
	}
}

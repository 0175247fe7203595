package ttlstore

import "time"

// entry is a cache entry.
type entry struct {
	K string
	V interface{}
	E time.Time

	expires bool
}

var (
	_ Entry     = entry{}
	_ Expirable = entry{}
)

// Key returns entry key.
func (e entry) Key() string {
	return e.K
}

// Value returns entry value.
func (e entry) Value() interface{} {
	return e.V
}

// ExpireAt returns expiration time, zero for entries without expiration.
func (e entry) ExpireAt() time.Time {
	if !e.expires {
		return time.Time{}
	}

	return e.E
}

// expiredAt tells if entry is expired at a given moment.
func (e entry) expiredAt(now time.Time) bool {
	return e.expires && !e.E.After(now)
}

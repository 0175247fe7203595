package ttlstore

import (
	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// EvictionPolicy selects an entry to drop when BoundedMap is full and a new key is inserted.
type EvictionPolicy int

const (
	// EvictOldest drops the entry with the oldest write, lookups do not affect order.
	// Replacing a value counts as a fresh write.
	EvictOldest EvictionPolicy = iota

	// EvictLeastRecentlyUsed drops the entry that was least recently written or found by Lookup.
	EvictLeastRecentlyUsed
)

// String implements fmt.Stringer.
func (p EvictionPolicy) String() string {
	switch p {
	case EvictOldest:
		return "oldest"
	case EvictLeastRecentlyUsed:
		return "lru"
	default:
		return "unknown"
	}
}

// BoundedMap is a fixed capacity string-keyed container.
//
// BoundedMap is not safe for concurrent use, owner must serialize access.
type BoundedMap[V any] struct {
	items    *simplelru.LRU[string, V]
	capacity int
	policy   EvictionPolicy
}

// NewBoundedMap creates BoundedMap of given capacity.
func NewBoundedMap[V any](capacity int, policy EvictionPolicy) (*BoundedMap[V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	// Eviction is done explicitly in Insert, so no callback is needed.
	items, err := simplelru.NewLRU[string, V](capacity, nil)
	if err != nil {
		return nil, err
	}

	return &BoundedMap[V]{
		items:    items,
		capacity: capacity,
		policy:   policy,
	}, nil
}

// Insert adds or replaces value.
//
// If key is new and map is full, one entry is evicted according to policy
// and its key is returned with true.
func (m *BoundedMap[V]) Insert(key string, v V) (evictedKey string, evicted bool) {
	if !m.items.Contains(key) && m.items.Len() >= m.capacity {
		evictedKey, _, evicted = m.items.RemoveOldest()
	}

	m.items.Add(key, v)

	return evictedKey, evicted
}

// Lookup returns value if it is present.
func (m *BoundedMap[V]) Lookup(key string) (V, bool) {
	if m.policy == EvictLeastRecentlyUsed {
		return m.items.Get(key)
	}

	return m.items.Peek(key)
}

// Remove deletes and returns value if it is present.
func (m *BoundedMap[V]) Remove(key string) (V, bool) {
	v, found := m.items.Peek(key)
	if found {
		m.items.Remove(key)
	}

	return v, found
}

// Filter removes all entries for which keep returns false.
//
// Entries are visited from oldest to newest, count of removed entries is returned.
func (m *BoundedMap[V]) Filter(keep func(key string, v V) bool) int {
	removed := 0

	for _, k := range m.items.Keys() {
		v, _ := m.items.Peek(k)

		if !keep(k, v) {
			m.items.Remove(k)

			removed++
		}
	}

	return removed
}

// Range calls fn for every entry from oldest to newest until fn returns false.
//
// Range does not affect eviction order, fn must not modify the map.
func (m *BoundedMap[V]) Range(fn func(key string, v V) bool) {
	for _, k := range m.items.Keys() {
		v, _ := m.items.Peek(k)

		if !fn(k, v) {
			return
		}
	}
}

// Update replaces every value with result of fn, eviction order is preserved.
func (m *BoundedMap[V]) Update(fn func(key string, v V) V) {
	// Re-adding keys from oldest to newest moves each to the front in turn,
	// so the resulting order matches the original one.
	for _, k := range m.items.Keys() {
		v, _ := m.items.Peek(k)
		m.items.Add(k, fn(k, v))
	}
}

// Keys returns keys from oldest to newest.
func (m *BoundedMap[V]) Keys() []string {
	return m.items.Keys()
}

// Len returns number of entries.
func (m *BoundedMap[V]) Len() int {
	return m.items.Len()
}

// IsEmpty is true when there are no entries.
func (m *BoundedMap[V]) IsEmpty() bool {
	return m.items.Len() == 0
}

// Capacity returns maximum number of entries.
func (m *BoundedMap[V]) Capacity() int {
	return m.capacity
}

// RemoveAll deletes all entries.
func (m *BoundedMap[V]) RemoveAll() {
	m.items.Purge()
}

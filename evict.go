package ttlstore

import (
	"context"
	"runtime"
)

// evictHeapInUse drops a fraction of entries in eviction order when heap in use exceeds soft limit.
//
// It returns the number of evicted entries.
func (s *Store) evictHeapInUse(ctx context.Context) int {
	if s.config.HeapInUseSoftLimit == 0 {
		return 0
	}

	m := runtime.MemStats{}
	runtime.ReadMemStats(&m)

	if m.HeapInuse < s.config.HeapInUseSoftLimit {
		return 0
	}

	evictItems := s.evictOldest(s.config.HeapInUseEvictFraction)

	if evictItems > 0 {
		s.log.Warn(ctx, "evicted cache entries due to heap in use",
			"name", s.config.Name,
			"heapInUse", m.HeapInuse,
			"count", evictItems)
		s.stat.Add(ctx, MetricEvict, float64(evictItems), "name", s.config.Name)
	}

	return evictItems
}

// evictOldest removes a fraction of entries in eviction order and returns their count.
func (s *Store) evictOldest(fraction float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := s.data.Keys()
	evictItems := int(float64(len(keys)) * fraction)

	if evictItems > len(keys) {
		evictItems = len(keys)
	}

	if evictItems < 0 {
		evictItems = 0
	}

	for _, k := range keys[:evictItems] {
		s.data.Remove(k)
	}

	return evictItems
}

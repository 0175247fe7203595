package ttlstore

// Metric names, all metrics are labeled with "name" of store.
const (
	MetricHit          = "cache_hit"
	MetricMiss         = "cache_miss"
	MetricExpired      = "cache_expired"
	MetricWrite        = "cache_write"
	MetricDelete       = "cache_delete"
	MetricEvict        = "cache_evict"
	MetricSwept        = "cache_swept"
	MetricItems        = "cache_items"
	MetricTypeMismatch = "cache_type_mismatch"
	MetricBuild        = "cache_build"
	MetricFailed       = "cache_failed"
)

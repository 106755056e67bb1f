package cache

// Metric names for stats tracker.
const (
	MetricHit        = "cache_hit"
	MetricMiss       = "cache_miss"
	MetricExpired    = "cache_expired"
	MetricWrite      = "cache_write"
	MetricDelete     = "cache_delete"
	MetricEvict      = "cache_evict"
	MetricBuild      = "cache_build"
	MetricFailed     = "cache_failed"
	MetricItems      = "cache_items"
	MetricInvalidate = "cache_invalidate"
)

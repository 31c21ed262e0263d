package repocache

// Stats is a point in time snapshot of pool usage counters. It is purely
// observational, meant for tuning and monitoring.
type Stats struct {
	// CachedCount is the number of repository contexts currently
	// resident in the pool
	CachedCount int `json:"cached_count"`

	// OpenCount is the cumulative number of backend open attempts,
	// including failed ones
	OpenCount uint64 `json:"open_count"`

	// HitCount is the cumulative number of Gets served from the cache
	// without a backend open
	HitCount uint64 `json:"hit_count"`

	// HitRate is HitCount over all lookups, 0 when the pool has not
	// been used yet
	HitRate float64 `json:"hit_rate"`
}

func hitRate(hits, opens uint64) float64 {
	total := hits + opens
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

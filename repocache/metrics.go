package repocache

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// cacheRequests is a Counter vector of pool lookups by result
	cacheRequests *prometheus.CounterVec
	// cacheEvictions is a Counter of entries evicted from the pool
	cacheEvictions prometheus.Counter
	// cacheResident is a Gauge of currently resident repository contexts
	cacheResident prometheus.Gauge
	// openLatency is a Histogram of successful backend open durations
	openLatency prometheus.Histogram
)

// EnableMetrics will enable metrics collection for the repository pool.
// Available metrics are...
//   - repo_cache_requests_total - (tags: result)
//     A Counter for each pool lookup, tagged with the outcome (result=hit|open)
//   - repo_cache_evictions_total
//     A Counter of repository contexts evicted from the pool
//   - repo_cache_resident_repositories
//     A Gauge of repository contexts currently resident in the pool
//   - repo_cache_open_latency_seconds
//     A Histogram of successful backend open durations
func EnableMetrics(metricsNamespace string, registerer prometheus.Registerer) {
	cacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "repo_cache_requests_total",
		Help:      "Count of repository pool lookups by result",
	},
		[]string{
			// hit or open
			"result",
		},
	)

	cacheEvictions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "repo_cache_evictions_total",
		Help:      "Count of repository contexts evicted from the pool",
	})

	cacheResident = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "repo_cache_resident_repositories",
		Help:      "Number of repository contexts currently resident in the pool",
	})

	openLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "repo_cache_open_latency_seconds",
		Help:      "Latency of successful repository opens",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	})

	registerer.MustRegister(
		cacheRequests,
		cacheEvictions,
		cacheResident,
		openLatency,
	)
}

func recordLookup(result string) {
	// if metrics not enabled return
	if cacheRequests == nil {
		return
	}
	cacheRequests.WithLabelValues(result).Inc()
}

func recordEvictions(count int) {
	if cacheEvictions == nil {
		return
	}
	cacheEvictions.Add(float64(count))
}

func setResident(count int) {
	if cacheResident == nil {
		return
	}
	cacheResident.Set(float64(count))
}

func observeOpenLatency(start time.Time) {
	if openLatency == nil {
		return
	}
	openLatency.Observe(time.Since(start).Seconds())
}

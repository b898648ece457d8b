package metrics

import "github.com/prometheus/client_golang/prometheus"

// Cache and search Prometheus metrics.
var (
	CacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mediadex",
			Name:      "cache_lookups_total",
			Help:      "Cache tier probes by entity kind and result",
		},
		[]string{"tier", "kind", "result"}, // "hit" / "miss"
	)

	CacheBackfillsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mediadex",
			Name:      "cache_backfills_total",
			Help:      "Entries written into faster tiers after a hit in a slower one",
		},
		[]string{"tier", "kind"},
	)

	CacheCommandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mediadex",
			Name:      "cache_command_duration_seconds",
			Help:      "Duration of cache commands across all tiers",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"command"},
	)

	CacheCommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mediadex",
			Name:      "cache_commands_total",
			Help:      "Cache commands run",
		},
		[]string{"command", "status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mediadex",
			Name:      "search_duration_seconds",
			Help:      "Search duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"paginated"},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "mediadex",
			Name:      "search_results",
			Help:      "Number of media matched per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

var cacheMetricsRegistered bool

// RegisterCacheMetrics registers cache and search metrics. Must be called once from main.
func RegisterCacheMetrics() {
	if cacheMetricsRegistered {
		return
	}
	prometheus.MustRegister(CacheLookupsTotal)
	prometheus.MustRegister(CacheBackfillsTotal)
	prometheus.MustRegister(CacheCommandDuration)
	prometheus.MustRegister(CacheCommandsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResults)
	cacheMetricsRegistered = true
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search orchestration Prometheus metrics.
var (
	SearchBatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leadscout",
			Name:      "search_batches_total",
			Help:      "Settled search batches by outcome",
		},
		[]string{"strategy", "status", "reason"},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "leadscout",
			Name:      "search_duration_seconds",
			Help:      "End-to-end search duration in seconds",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 30, 60, 90, 120, 180},
		},
	)

	SearchRecords = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "leadscout",
			Name:      "search_records",
			Help:      "Deduplicated records returned per search",
			Buckets:   []float64{0, 5, 10, 25, 50, 100, 150, 200, 250},
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchBatchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchRecords)
	searchMetricsRegistered = true
}

// ObserveBatch records one settled batch. reason is empty for successful batches.
func ObserveBatch(strategy, status, reason string) {
	if reason == "" {
		reason = "none"
	}
	SearchBatchesTotal.WithLabelValues(strategy, status, reason).Inc()
}

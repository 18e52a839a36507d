// Package metrics holds Prometheus metrics for the generation pipeline.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Generation Prometheus metrics.
var (
	OracleRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logfaker",
			Name:      "oracle_requests_total",
			Help:      "Total number of generative oracle requests",
		},
		[]string{"operation", "status"},
	)

	OracleRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "logfaker",
			Name:      "oracle_request_duration_seconds",
			Help:      "Generative oracle request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"operation"},
	)

	OracleTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logfaker",
			Name:      "oracle_tokens_total",
			Help:      "Total completion tokens consumed",
		},
		[]string{"model", "type"},
	)

	DatasetReuseTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logfaker",
			Name:      "dataset_reuse_total",
			Help:      "Dataset reuse cache hits and misses",
		},
		[]string{"kind", "result"}, // result: "hit" / "miss"
	)

	EntitiesGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logfaker",
			Name:      "entities_generated_total",
			Help:      "Total entities produced by the generators",
		},
		[]string{"kind"},
	)

	SearchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logfaker",
			Name:      "search_queries_total",
			Help:      "Total queries executed against the search engine",
		},
		[]string{"status"},
	)

	IndexedDocumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logfaker",
			Name:      "indexed_documents_total",
			Help:      "Total content items indexed into the search engine",
		},
		[]string{"status"},
	)
)

var generationMetricsRegistered bool

// RegisterGenerationMetrics registers Prometheus generation metrics. Must be called once from main.
func RegisterGenerationMetrics() {
	if generationMetricsRegistered {
		return
	}
	prometheus.MustRegister(OracleRequestsTotal)
	prometheus.MustRegister(OracleRequestDuration)
	prometheus.MustRegister(OracleTokensTotal)
	prometheus.MustRegister(DatasetReuseTotal)
	prometheus.MustRegister(EntitiesGeneratedTotal)
	prometheus.MustRegister(SearchQueriesTotal)
	prometheus.MustRegister(IndexedDocumentsTotal)
	generationMetricsRegistered = true
}

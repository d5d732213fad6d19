package metrics

import "github.com/prometheus/client_golang/prometheus"

// Query Prometheus metrics.
var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "faqbot",
			Name:      "queries_total",
			Help:      "Total number of answered queries by routed intent",
		},
		[]string{"intent", "status"},
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "faqbot",
			Name:      "query_duration_seconds",
			Help:      "Query answering duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5},
		},
		[]string{"intent"},
	)

	GenericBestScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "faqbot",
			Name:      "generic_best_score",
			Help:      "Best cosine similarity of generic-path queries",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	AnswerCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "faqbot",
			Name:      "answer_cache_total",
			Help:      "Answer cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	CorpusRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "faqbot",
			Name:      "corpus_records",
			Help:      "Number of FAQ records loaded",
		},
	)

	VocabularyTerms = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "faqbot",
			Name:      "vocabulary_terms",
			Help:      "Number of terms in the fitted TF-IDF vocabulary",
		},
	)
)

var queryMetricsRegistered bool

// RegisterQueryMetrics registers the query metrics. Must be called once from main.
func RegisterQueryMetrics() {
	if queryMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(QueryDuration)
	prometheus.MustRegister(GenericBestScore)
	prometheus.MustRegister(AnswerCacheTotal)
	prometheus.MustRegister(CorpusRecords)
	prometheus.MustRegister(VocabularyTerms)
	queryMetricsRegistered = true
}

package feed

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	bucketCandidates = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_bucket_candidates",
			Help:    "Candidates per bucket after dealbreaker filtering.",
			Buckets: []float64{0, 5, 10, 25, 50, 75, 100, 150},
		},
		[]string{"bucket"},
	)

	fetchFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_fetch_failures_total",
			Help: "Candidate fetches that degraded to an empty bucket, by bucket and reason.",
		},
		[]string{"bucket", "reason"},
	)

	personalizationFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_personalization_fallbacks_total",
			Help: "Personal bucket fetches served by the fallback query, by reason.",
		},
		[]string{"reason"},
	)

	recencyReorders = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feed_recency_reorders_total",
		Help: "Mixed feeds reordered to surface recently reviewed businesses.",
	})
)

func init() {
	prometheus.MustRegister(
		bucketCandidates,
		fetchFailuresTotal,
		personalizationFallbacks,
		recencyReorders,
	)
}

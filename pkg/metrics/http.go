package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the business listing handler, by feed strategy
	ListingLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "business_listing_latency_seconds",
		Help:    "Latency of the business listing handler",
		Buckets: prometheus.DefBuckets,
	}, []string{"strategy"})

	// Total listing requests, by feed strategy and outcome
	ListingRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "business_listing_requests_total",
		Help: "Total number of business listing requests",
	}, []string{"strategy", "outcome"})
)

func Init() {
	prometheus.MustRegister(
		ListingLatency,
		ListingRequests,
	)
}

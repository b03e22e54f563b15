package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AvailabilityCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ridehail", Name: "availability_cache_hits_total",
		Help: "Available-riders listings served from cache",
	})
	AvailabilityCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ridehail", Name: "availability_cache_misses_total",
		Help: "Available-riders listings recomputed from the store",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ridehail", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ridehail",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	CacheHit    = "hit"
	CacheMiss   = "miss"
	CacheShared = "shared"
)

var (
	apiRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_client_requests_total",
			Help: "Requests sent to the marketplace API",
		},
		[]string{"method", "route", "code"},
	)

	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketplace_client_request_duration_seconds",
			Help:    "Latency of marketplace API requests",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"method", "route"},
	)

	apiRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_client_retries_total",
			Help: "Query retries after a failed attempt",
		},
		[]string{"route"},
	)

	queryCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_client_query_cache_total",
			Help: "Query cache lookups by result",
		},
		[]string{"result"},
	)

	cacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_client_cache_invalidations_total",
			Help: "Cache prefixes dropped after a mutation",
		},
		[]string{"prefix"},
	)

	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_sandbox_http_requests_total",
			Help: "Requests served by the sandbox API",
		},
		[]string{"method", "route", "code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketplace_sandbox_http_request_duration_seconds",
			Help:    "Latency of sandbox API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// TrackAPIRequest records one attempt against the API. code 0 means the
// request never got a response.
func TrackAPIRequest(method, route string, code int, d time.Duration) {
	apiRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	apiRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func TrackRetry(route string) {
	apiRetries.WithLabelValues(route).Inc()
}

func TrackCacheLookup(result string) {
	queryCache.WithLabelValues(result).Inc()
}

func TrackInvalidation(prefix string) {
	cacheInvalidations.WithLabelValues(prefix).Inc()
}

func TrackHTTPRequest(method, route string, code int, d time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

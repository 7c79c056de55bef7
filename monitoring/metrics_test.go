package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTrackAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(apiRequests.WithLabelValues("GET", "/events", "200"))
	TrackAPIRequest("GET", "/events", 200, 15*time.Millisecond)
	TrackAPIRequest("GET", "/events", 200, 20*time.Millisecond)

	assert.Equal(t, before+2, testutil.ToFloat64(apiRequests.WithLabelValues("GET", "/events", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(apiRequestDuration, "marketplace_client_request_duration_seconds"))
}

func TestTrackCacheLookupAndRetry(t *testing.T) {
	hits := testutil.ToFloat64(queryCache.WithLabelValues(CacheHit))
	TrackCacheLookup(CacheHit)
	assert.Equal(t, hits+1, testutil.ToFloat64(queryCache.WithLabelValues(CacheHit)))

	retries := testutil.ToFloat64(apiRetries.WithLabelValues("/wallet/balance"))
	TrackRetry("/wallet/balance")
	assert.Equal(t, retries+1, testutil.ToFloat64(apiRetries.WithLabelValues("/wallet/balance")))

	inv := testutil.ToFloat64(cacheInvalidations.WithLabelValues("tickets"))
	TrackInvalidation("tickets")
	assert.Equal(t, inv+1, testutil.ToFloat64(cacheInvalidations.WithLabelValues("tickets")))
}

func TestTrackHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("POST", "/api/tickets/buy", "201"))
	TrackHTTPRequest("POST", "/api/tickets/buy", 201, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("POST", "/api/tickets/buy", "201")))
}

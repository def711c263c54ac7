package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegisterIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(bookingTransitions.WithLabelValues("APPROVED"))
	IncBookingTransition("APPROVED")
	assert.Equal(t, before+1, testutil.ToFloat64(bookingTransitions.WithLabelValues("APPROVED")))

	hits := testutil.ToFloat64(cacheLookups.WithLabelValues("hit"))
	IncCacheLookup(true)
	IncCacheLookup(false)
	assert.Equal(t, hits+1, testutil.ToFloat64(cacheLookups.WithLabelValues("hit")))

	reqs := testutil.ToFloat64(httpRequests.WithLabelValues("server", "GET", "/users/:id", "404"))
	ObserveHTTP("server", http.MethodGet, "/users/:id", http.StatusNotFound, 5*time.Millisecond)
	assert.Equal(t, reqs+1, testutil.ToFloat64(httpRequests.WithLabelValues("server", "GET", "/users/:id", "404")))
}

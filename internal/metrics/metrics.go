package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "shareit"

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by tier, method, route and status.",
		},
		[]string{"tier", "method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by tier and route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"tier", "route"},
	)

	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transitions_total",
			Help:      "Bookings created or decided, by resulting status.",
		},
		[]string{"status"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "user_cache_lookups_total",
			Help:      "User cache lookups by result.",
		},
		[]string{"result"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, bookingTransitions, cacheLookups)
	})
}

// ObserveHTTP records one finished request.
func ObserveHTTP(tier, method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(tier, method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(tier, route).Observe(elapsed.Seconds())
}

// IncBookingTransition counts a booking entering status.
func IncBookingTransition(status string) {
	bookingTransitions.WithLabelValues(status).Inc()
}

// IncCacheLookup counts a cache hit or miss.
func IncCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(result).Inc()
}

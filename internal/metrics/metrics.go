package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	availabilityRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agenda",
			Name:      "availability_requests_total",
			Help:      "Availability queries served.",
		},
	)

	availabilityDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "agenda",
			Name:      "availability_request_duration_seconds",
			Help:      "Time spent computing availability.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agenda",
			Name:      "bookings_created_total",
			Help:      "Bookings successfully created.",
		},
	)

	bookingConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agenda",
			Name:      "booking_conflicts_total",
			Help:      "Booking attempts that lost the race for a slot.",
		},
	)

	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agenda",
			Name:      "availability_cache_total",
			Help:      "Availability cache lookups by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registra os coletores. Seguro chamar mais de uma vez.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			availabilityRequests,
			availabilityDuration,
			bookingsCreated,
			bookingConflicts,
			cacheHits,
		)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func IncAvailabilityRequest() { availabilityRequests.Inc() }
func ObserveAvailability(seconds float64) { availabilityDuration.Observe(seconds) }
func IncBookingCreated() { bookingsCreated.Inc() }
func IncBookingConflict() { bookingConflicts.Inc() }
func IncCacheHit() { cacheHits.WithLabelValues("hit").Inc() }
func IncCacheMiss() { cacheHits.WithLabelValues("miss").Inc() }

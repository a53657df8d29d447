package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RatingsRecorded counts ratings stored together with a refreshed average.
	RatingsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_ratings_recorded_total",
			Help: "Total number of ratings stored with an updated aggregate",
		},
	)

	// RatingConflicts counts aggregate writes rejected by a concurrent-write conflict.
	RatingConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_rating_conflicts_total",
			Help: "Total number of rating writes that hit a concurrent-write conflict",
		},
	)

	// AggregateWriteDuration times the locked read-modify-write of a movie aggregate.
	AggregateWriteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_aggregate_write_duration_seconds",
			Help:    "Duration of the locked read-modify-write that updates a movie aggregate",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	// SearchResults observes how many movies each search page returned.
	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_search_results",
			Help:    "Number of movies returned per search page",
			Buckets: []float64{0, 1, 2, 5, 10},
		},
	)

	// APIRequestsTotal counts HTTP requests by method, route pattern and status.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	// APIRequestDuration times HTTP requests by method and route pattern.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)
)

// RecordAPIRequest records a finished HTTP request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveAggregateWrite records the latency of one aggregate update.
func ObserveAggregateWrite(start time.Time) {
	AggregateWriteDuration.Observe(time.Since(start).Seconds())
}

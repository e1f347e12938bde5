// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the shelfd catalog service.
package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// RequestsTotal counts all HTTP requests by method and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelfd_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shelfd_request_duration_seconds",
			Help:    "Request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// AuthFailuresTotal counts rejected authentication attempts.
	AuthFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shelfd_auth_failures_total",
			Help: "Failed authentication attempts",
		},
	)

	// RateLimitRejectedTotal counts requests rejected by the rate limiter.
	RateLimitRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shelfd_ratelimit_rejected_total",
			Help: "Rate limit rejections",
		},
	)

	// BooksTotal tracks the current number of books in the catalog.
	BooksTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "shelfd_books_total",
			Help: "Books in the catalog",
		},
	)

	// UsersTotal tracks the current number of registered users.
	UsersTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "shelfd_users_total",
			Help: "Registered users",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		AuthFailuresTotal,
		RateLimitRejectedTotal,
		BooksTotal,
		UsersTotal,
	)
}

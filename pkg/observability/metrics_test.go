package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestMetricsRegistered verifies that all metrics are registered in the
// default registry without panicking.
func TestMetricsRegistered(t *testing.T) {
	// Seed vectors so they appear in the gather output; plain counters and
	// gauges are always visible.
	RequestsTotal.WithLabelValues("GET", "2xx").Inc()
	RequestDuration.WithLabelValues("GET").Observe(0.01)
	AuthFailuresTotal.Inc()
	RateLimitRejectedTotal.Inc()
	BooksTotal.Set(3)
	UsersTotal.Set(1)

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("unexpected gather error: %v", err)
	}

	expected := map[string]bool{
		"shelfd_requests_total":           false,
		"shelfd_request_duration_seconds": false,
		"shelfd_auth_failures_total":      false,
		"shelfd_ratelimit_rejected_total": false,
		"shelfd_books_total":              false,
		"shelfd_users_total":              false,
	}

	for _, mf := range families {
		if _, ok := expected[mf.GetName()]; ok {
			expected[mf.GetName()] = true
		}
	}

	for name, seen := range expected {
		if !seen {
			t.Errorf("metric %s not registered", name)
		}
	}
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestMetricsMiddlewareCountsRequests(t *testing.T) {
	before := counterValue(t, RequestsTotal.WithLabelValues("GET", "4xx"))

	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/books/BK404", nil))

	after := counterValue(t, RequestsTotal.WithLabelValues("GET", "4xx"))
	if after != before+1 {
		t.Errorf("requests_total{GET,4xx} = %v, want %v", after, before+1)
	}
}

func TestStatusWriterDefaultsTo200(t *testing.T) {
	before := counterValue(t, RequestsTotal.WithLabelValues("GET", "2xx"))

	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok")) // implicit 200
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	after := counterValue(t, RequestsTotal.WithLabelValues("GET", "2xx"))
	if after != before+1 {
		t.Errorf("requests_total{GET,2xx} = %v, want %v", after, before+1)
	}
}

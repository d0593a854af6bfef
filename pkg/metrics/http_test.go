package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/v1/blogs", "200", 30*time.Millisecond)
	m.Observe("GET", "/api/v1/blogs", "200", 10*time.Millisecond)
	m.Observe("POST", "/api/v1/contact", "429", time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/blogs", "200")); got != 2 {
		t.Fatalf("expected 2 requests counted, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/v1/contact", "429")); got != 1 {
		t.Fatalf("expected 1 rate-limited request, got %v", got)
	}
}

func TestHTTPMetricsNilSafe(t *testing.T) {
	var m *HTTPMetrics
	m.Observe("GET", "/", "200", time.Millisecond)

	unregistered := NewHTTPMetrics(nil)
	unregistered.Observe("", "", "", time.Millisecond)
}

package request

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var endpointLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "crease_endpoint_latency_seconds",
	Help:    "Latency of endpoints in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"endpoint", "method"})

// Latency observes per-endpoint request latency. The chi route pattern is
// used as the label, not the raw path, so /admin/registrations/{id}/status
// stays one series regardless of the id.
func Latency(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		endpoint := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				endpoint = pattern
			}
		}
		endpointLatency.WithLabelValues(endpoint, r.Method).Observe(time.Since(start).Seconds())
	})
}

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/subcart/backend/internal/metrics"
)

// RequestTracker records per-request count and latency metrics into the
// Prometheus registry.
type RequestTracker struct {
	metrics *metrics.Metrics
}

// NewRequestTracker creates a new request tracker middleware.
func NewRequestTracker(m *metrics.Metrics) *RequestTracker {
	return &RequestTracker{metrics: m}
}

// Middleware returns an HTTP middleware that tracks request metrics.
func (rt *RequestTracker) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap the response writer to capture the status code.
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			rt.metrics.HTTPRequestsTotal.WithLabelValues(
				r.Method,
				r.URL.Path,
				strconv.Itoa(rw.statusCode),
			).Inc()
			rt.metrics.HTTPRequestDuration.WithLabelValues(
				r.Method,
				r.URL.Path,
			).Observe(time.Since(start).Seconds())
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

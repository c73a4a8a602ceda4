package middleware

import (
	"net/http"
	"strings"
	"time"

	"salonbook/pkg/metrics"
)

// RequestMetrics observes request durations. Paths outside the API and the
// operational endpoints share the "static" route label to keep cardinality
// bounded.
func RequestMetrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapWriter(w)

			next.ServeHTTP(wrapped, r)

			metrics.ObserveHTTPRequest(r.Method, routeLabel(r.URL.Path), wrapped.statusCode, time.Since(start))
		})
	}
}

func routeLabel(path string) string {
	switch path {
	case "/api/bookings", "/api/availability", "/health", "/ready", "/metrics":
		return path
	}
	if strings.HasPrefix(path, "/api/") {
		return "/api/other"
	}
	return "static"
}

package main

import (
	"net/http"

	"golang.org/x/time/rate"
)

var rateLimiter *rate.Limiter

// rateLimitMiddleware enforces a global rate limiter, skipping the
// long-lived streaming endpoints.
func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/live" || r.URL.Path == "/ws" {
			next.ServeHTTP(w, r)
			return
		}
		if !rateLimiter.Allow() {
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// routePath returns the mux route template for the request, falling back to
// the raw path. Using the template keeps the path label cardinality bounded
// (/api/users/{id} instead of one series per user id).
func routePath(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return r.URL.Path
}

// loggingMiddleware emits one structured completion line per request and
// records the request counter and duration histogram.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		configLock.RLock()
		logRequests := config.LogRequests
		configLock.RUnlock()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		elapsed := time.Since(start)
		path := routePath(r)

		if logRequests {
			logger.WithFields(logrus.Fields{
				"request_id":  r.Header.Get("X-Request-ID"),
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rw.statusCode,
				"duration_ms": elapsed.Milliseconds(),
				"remote_addr": getClientIP(r),
			}).Info("request completed")
		}

		stats.requestsTotal.Add(1)
		requestDuration.WithLabelValues(path).Observe(elapsed.Seconds())
		requestTotal.WithLabelValues(r.Method, path, strconv.Itoa(rw.statusCode)).Inc()
	})
}

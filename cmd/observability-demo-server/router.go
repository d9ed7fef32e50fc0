package main

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes configures all HTTP routes and middleware for the server.
func setupRoutes() *mux.Router {
	router := mux.NewRouter()

	// Apply middleware
	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)
	router.Use(requestIDMiddleware)
	if rateLimiter != nil {
		router.Use(rateLimitMiddleware)
	}

	// Home and health
	router.HandleFunc("/", homeHandler).Methods("GET")
	router.HandleFunc("/health", healthHandler).Methods("GET")
	router.HandleFunc("/ready", readyHandler).Methods("GET")
	router.HandleFunc("/info", infoHandler).Methods("GET")

	// Simulated domain endpoints
	router.HandleFunc("/api/users/{id}", userLookupHandler).Methods("GET")
	router.HandleFunc("/api/orders", createOrderHandler).Methods("POST")
	router.HandleFunc("/api/slow", slowHandler).Methods("GET")
	router.HandleFunc("/api/error", errorHandler).Methods("GET")
	router.HandleFunc("/api/metrics-demo", metricsDemoHandler).Methods("GET")

	// Live stats streams
	router.HandleFunc("/live", liveStatsHandler).Methods("GET")
	router.HandleFunc("/ws", websocketStatsHandler)

	// Prometheus scrape endpoint
	router.Handle("/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{})).Methods("GET")

	// Catch-all JSON 404 keeps the middleware chain in play for unmatched
	// paths (and wrong-method requests, which fall through to it).
	router.PathPrefix("/").HandlerFunc(notFoundHandler)

	return router
}

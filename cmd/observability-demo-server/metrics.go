package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Prometheus metrics
var (
	requestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)
	ordersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_total",
			Help: "Total number of orders by outcome",
		},
		[]string{"status"},
	)
	orderValue = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_value_dollars",
			Help:    "Order value in dollars",
			Buckets: prometheus.ExponentialBuckets(10, 2, 8), // $10 to $1280
		},
	)
	activeUsers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_users",
			Help: "Number of active users",
		},
	)
	dbQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "database_query_duration_seconds",
			Help:    "Simulated database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 8), // 5ms to ~640ms
		},
		[]string{"query_type"},
	)
	simulatedErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simulated_errors_total",
			Help: "Total number of intentionally simulated errors",
		},
		[]string{"reason"},
	)
	appInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application info",
		},
		[]string{"version"},
	)
)

// Order outcome label values. Validation failures get their own series so
// malformed input never skews the business success-rate signal.
const (
	orderAccepted        = "accepted"
	orderRejected        = "rejected"
	orderRejectedInvalid = "rejected_invalid"
)

// metricsRegistry is the process-wide registry scraped by /metrics.
var metricsRegistry *prometheus.Registry

// newMetricsRegistry registers all instruments with a fresh registry.
// Duplicate names with incompatible types panic here, at startup, rather
// than corrupting a series later.
func newMetricsRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		requestTotal,
		requestDuration,
		ordersTotal,
		orderValue,
		activeUsers,
		dbQueryDuration,
		simulatedErrors,
		appInfo,
	)
	// Process collector supplies process_start_time_seconds, which scrapers
	// use to detect counter resets across restarts.
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

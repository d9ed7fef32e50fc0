package main

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// slowHandler is intentionally slow so the duration histogram's high buckets
// get exercised and latency-percentile alerts can be demonstrated.
func slowHandler(w http.ResponseWriter, r *http.Request) {
	duration := sim.delay(classSlow)

	logger.WithFields(logrus.Fields{
		"endpoint":          "/api/slow",
		"expected_duration": duration.Seconds(),
	}).Warn("Slow endpoint accessed")

	hold(r.Context(), duration)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":          "This was intentionally slow",
		"duration_seconds": duration.Seconds(),
	})
}

// simulatedFailure is one of the failure shapes the error endpoint can
// produce. Every shape is a complete, well-formed response so downstream
// alerting measures real error rate, not dropped connections.
type simulatedFailure struct {
	status  int
	message string
	reason  string
}

var simulatedFailures = []simulatedFailure{
	{http.StatusInternalServerError, "Internal Server Error", "database_connection_failed"},
	{http.StatusServiceUnavailable, "Service Unavailable", "downstream_service_timeout"},
	{http.StatusTooManyRequests, "Too Many Requests", "rate_limit_exceeded"},
}

// errorHandler fails with the configured probability, picking one of the
// failure shapes at random; otherwise it responds 200.
func errorHandler(w http.ResponseWriter, r *http.Request) {
	configLock.RLock()
	errorProbability := config.Simulation.ErrorProbability
	configLock.RUnlock()

	if !sim.outcome(errorProbability) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	failure := simulatedFailures[sim.intBetween(0, len(simulatedFailures)-1)]
	simulatedErrors.WithLabelValues(failure.reason).Inc()
	stats.simulatedErrors.Add(1)

	logger.WithFields(logrus.Fields{
		"status_code": failure.status,
		"reason":      failure.reason,
	}).Error("Error endpoint triggered")

	writeJSON(w, failure.status, map[string]string{
		"error":  failure.message,
		"reason": failure.reason,
	})
}

package main

import (
	"net/http"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// homeHandler is the service card at the root path.
func homeHandler(w http.ResponseWriter, r *http.Request) {
	logger.WithFields(logrus.Fields{
		"endpoint":   "/",
		"user_agent": r.UserAgent(),
	}).Info("Home endpoint accessed")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service":   "Observability Demo Server",
		"status":    "running",
		"version":   serviceVersion,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Health check handlers
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"uptime": time.Since(startTime).String(),
	})
}

func readyHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// infoHandler reports runtime details and the active simulation profile.
func infoHandler(w http.ResponseWriter, r *http.Request) {
	configLock.RLock()
	hostname := config.Hostname
	simulation := config.Simulation
	configLock.RUnlock()

	snap := snapshotStats()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service":    "Observability Demo Server",
		"version":    serviceVersion,
		"hostname":   hostname,
		"go_version": runtime.Version(),
		"platform":   runtime.GOOS + "/" + runtime.GOARCH,
		"start_time": startTime,
		"uptime":     time.Since(startTime).String(),
		"simulation": simulation,
		"stats":      snap,
	})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	logger.WithFields(logrus.Fields{
		"path":   r.URL.Path,
		"method": r.Method,
	}).Warn("404 Not Found")
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
}

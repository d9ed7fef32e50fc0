package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveStatsHandler streams the stats snapshot as server-sent events until
// the client disconnects.
func liveStatsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.WithField("remote_addr", r.RemoteAddr).Error("Streaming not supported")
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	configLock.RLock()
	interval := config.StatsInterval
	configLock.RUnlock()

	logger.WithField("remote_addr", r.RemoteAddr).Info("Live stats stream established")

	ticker := time.NewTicker(interval)
	keepAlive := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			logger.WithField("remote_addr", r.RemoteAddr).Info("Live stats stream closed by client")
			return
		case <-ticker.C:
			data, err := json.Marshal(snapshotStats())
			if err != nil {
				logger.WithField("error", err).Error("Stats snapshot marshal failed")
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		case <-keepAlive.C:
			if _, err := fmt.Fprintf(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// websocketStatsHandler pushes the same snapshot over a WebSocket on the
// configured interval.
func websocketStatsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithField("error", err).Error("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	configLock.RLock()
	interval := config.StatsInterval
	configLock.RUnlock()

	logger.WithField("remote_addr", r.RemoteAddr).Info("WebSocket stats stream connected")

	// Send one snapshot immediately so clients don't wait a full interval.
	if err := conn.WriteJSON(snapshotStats()); err != nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := conn.WriteJSON(snapshotStats()); err != nil {
				logger.WithField("error", err).Info("WebSocket stats stream closed")
				return
			}
		}
	}
}

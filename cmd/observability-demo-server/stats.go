package main

import (
	"sync/atomic"
	"time"
)

// serverStats mirrors a handful of headline numbers with plain atomics so
// the live streams and /info can report them without scraping our own
// registry.
type serverStats struct {
	requestsTotal   atomic.Uint64
	ordersAccepted  atomic.Uint64
	ordersRejected  atomic.Uint64
	simulatedErrors atomic.Uint64
	activeUsers     atomic.Int64
}

var stats serverStats

// statsSnapshot is the payload pushed on the SSE and WebSocket streams.
type statsSnapshot struct {
	RequestsTotal   uint64    `json:"requests_total"`
	OrdersAccepted  uint64    `json:"orders_accepted"`
	OrdersRejected  uint64    `json:"orders_rejected"`
	SimulatedErrors uint64    `json:"simulated_errors"`
	ActiveUsers     int64     `json:"active_users"`
	Uptime          string    `json:"uptime"`
	Timestamp       time.Time `json:"timestamp"`
}

func snapshotStats() statsSnapshot {
	return statsSnapshot{
		RequestsTotal:   stats.requestsTotal.Load(),
		OrdersAccepted:  stats.ordersAccepted.Load(),
		OrdersRejected:  stats.ordersRejected.Load(),
		SimulatedErrors: stats.simulatedErrors.Load(),
		ActiveUsers:     stats.activeUsers.Load(),
		Uptime:          time.Since(startTime).String(),
		Timestamp:       time.Now(),
	}
}

// adjustActiveUsers moves both the gauge and the mirror by delta and returns
// the mirrored value.
func adjustActiveUsers(delta int) int64 {
	activeUsers.Add(float64(delta))
	return stats.activeUsers.Add(int64(delta))
}

// setActiveUsers seeds both the gauge and the mirror.
func setActiveUsers(n int) {
	activeUsers.Set(float64(n))
	stats.activeUsers.Store(int64(n))
}

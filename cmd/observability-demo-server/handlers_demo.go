package main

import "net/http"

// metricsDemoHandler touches one instrument of every variant so all metric
// names exist at scrape time: the gauge takes a random walk, and a burst of
// synthetic accepted orders feeds the counter and value histogram.
func metricsDemoHandler(w http.ResponseWriter, r *http.Request) {
	configLock.RLock()
	valueMin := config.Simulation.DemoOrderValueMin
	valueMax := config.Simulation.DemoOrderValueMax
	configLock.RUnlock()

	current := adjustActiveUsers(sim.intBetween(-5, 10))

	orders := sim.intBetween(1, 5)
	for i := 0; i < orders; i++ {
		ordersTotal.WithLabelValues(orderAccepted).Inc()
		orderValue.Observe(sim.floatBetween(valueMin, valueMax))
		stats.ordersAccepted.Add(1)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Metrics generated",
		"active_users": current,
	})
}

package main

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// userLookupHandler simulates a user lookup backed by a SELECT with variable
// latency. The measured hold time is observed as the query duration.
func userLookupHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	queryStart := time.Now()
	hold(r.Context(), sim.delay(classNormal))
	queryDuration := time.Since(queryStart)
	dbQueryDuration.WithLabelValues("select").Observe(queryDuration.Seconds())

	// Lookups nudge the active-users gauge up or down by one.
	adjustActiveUsers(sim.intBetween(-1, 1))

	logger.WithFields(logrus.Fields{
		"user_id":        userID,
		"query_duration": queryDuration.Seconds(),
	}).Info("User lookup")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":  userID,
		"username": "user_" + userID,
		"active":   true,
	})
}

package main

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// orderRequest is the expected POST /api/orders payload. Amount is a pointer
// so a missing field is distinguishable from an explicit zero.
type orderRequest struct {
	Customer string   `json:"customer"`
	Amount   *float64 `json:"amount"`
}

// validate returns a human-readable reason when the payload is malformed.
func (o *orderRequest) validate() string {
	if strings.TrimSpace(o.Customer) == "" {
		return "customer is required"
	}
	if o.Amount == nil {
		return "amount is required"
	}
	if *o.Amount <= 0 {
		return "amount must be positive"
	}
	return ""
}

// createOrderHandler simulates order creation: validate, hold a simulated
// insert, then sample the payment outcome. Validation failures are counted
// as rejected_invalid and never touch the accepted/rejected series, so
// malformed input cannot skew the success-rate signal.
func createOrderHandler(w http.ResponseWriter, r *http.Request) {
	configLock.RLock()
	maxBodySize := config.MaxBodySize
	successProbability := config.Simulation.OrderSuccessProbability
	configLock.RUnlock()

	var order orderRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&order); err != nil {
		ordersTotal.WithLabelValues(orderRejectedInvalid).Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"status": "invalid",
			"error":  "invalid JSON body",
		})
		return
	}
	if reason := order.validate(); reason != "" {
		ordersTotal.WithLabelValues(orderRejectedInvalid).Inc()
		logger.WithFields(logrus.Fields{
			"reason":   reason,
			"customer": order.Customer,
		}).Warn("Order validation failed")
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"status": "invalid",
			"error":  reason,
		})
		return
	}

	queryStart := time.Now()
	hold(r.Context(), sim.delay(classDBInsert))
	dbQueryDuration.WithLabelValues("insert").Observe(time.Since(queryStart).Seconds())

	if sim.outcome(successProbability) {
		orderID := sim.intBetween(1000, 9999)
		ordersTotal.WithLabelValues(orderAccepted).Inc()
		orderValue.Observe(*order.Amount)
		stats.ordersAccepted.Add(1)

		logger.WithFields(logrus.Fields{
			"order_id": orderID,
			"amount":   *order.Amount,
			"customer": order.Customer,
		}).Info("Order created successfully")

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"status":   orderAccepted,
			"order_id": orderID,
		})
		return
	}

	ordersTotal.WithLabelValues(orderRejected).Inc()
	stats.ordersRejected.Add(1)

	logger.WithFields(logrus.Fields{
		"reason": "payment_declined",
		"amount": *order.Amount,
	}).Error("Order creation failed")

	writeJSON(w, http.StatusPaymentRequired, map[string]string{
		"status": orderRejected,
		"reason": "payment_declined",
	})
}

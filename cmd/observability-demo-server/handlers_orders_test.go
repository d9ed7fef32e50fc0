package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postOrder(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestCreateOrderAlwaysAccepted(t *testing.T) {
	setupTest()
	configLock.Lock()
	config.Simulation.OrderSuccessProbability = 1.0
	configLock.Unlock()

	router := setupRoutes()
	rr := postOrder(t, router, `{"customer":"user_7","amount":120}`)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "accepted", resp["status"])
	assert.NotZero(t, resp["order_id"])

	assert.Equal(t, 1.0, testutil.ToFloat64(ordersTotal.WithLabelValues(orderAccepted)))
	assert.Equal(t, 0.0, testutil.ToFloat64(ordersTotal.WithLabelValues(orderRejected)))

	// The 120-dollar observation lands in the histogram
	families, err := metricsRegistry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "order_value_dollars" {
			continue
		}
		h := mf.GetMetric()[0].GetHistogram()
		assert.Equal(t, uint64(1), h.GetSampleCount())
		assert.InDelta(t, 120.0, h.GetSampleSum(), 1e-9)
	}
}

func TestCreateOrderAlwaysRejected(t *testing.T) {
	setupTest()
	configLock.Lock()
	config.Simulation.OrderSuccessProbability = 0.0
	configLock.Unlock()

	router := setupRoutes()
	rr := postOrder(t, router, `{"customer":"user_7","amount":120}`)

	require.Equal(t, http.StatusPaymentRequired, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "rejected", resp["status"])
	assert.Equal(t, "payment_declined", resp["reason"])

	assert.Equal(t, 0.0, testutil.ToFloat64(ordersTotal.WithLabelValues(orderAccepted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(ordersTotal.WithLabelValues(orderRejected)))
}

func TestCreateOrderValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"not JSON", `not json`},
		{"missing customer", `{"amount":100}`},
		{"empty customer", `{"customer":"","amount":100}`},
		{"whitespace customer", `{"customer":"   ","amount":100}`},
		{"missing amount", `{"customer":"user_1"}`},
		{"zero amount", `{"customer":"user_1","amount":0}`},
		{"negative amount", `{"customer":"user_1","amount":-5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTest()
			configLock.Lock()
			config.Simulation.OrderSuccessProbability = 1.0
			configLock.Unlock()

			router := setupRoutes()
			rr := postOrder(t, router, tt.body)

			require.Equal(t, http.StatusBadRequest, rr.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "invalid", resp["status"])

			// Malformed input must never touch the business outcome series
			assert.Equal(t, 0.0, testutil.ToFloat64(ordersTotal.WithLabelValues(orderAccepted)))
			assert.Equal(t, 0.0, testutil.ToFloat64(ordersTotal.WithLabelValues(orderRejected)))
			assert.Equal(t, 1.0, testutil.ToFloat64(ordersTotal.WithLabelValues(orderRejectedInvalid)))
		})
	}
}

func TestCreateOrderAcceptanceRate(t *testing.T) {
	setupTest()
	configLock.Lock()
	config.Simulation.OrderSuccessProbability = 0.8
	configLock.Unlock()

	router := setupRoutes()
	const trials = 1000
	for i := 0; i < trials; i++ {
		rr := postOrder(t, router, `{"customer":"user_1","amount":50}`)
		require.Contains(t, []int{http.StatusCreated, http.StatusPaymentRequired}, rr.Code)
	}

	accepted := testutil.ToFloat64(ordersTotal.WithLabelValues(orderAccepted))
	rejected := testutil.ToFloat64(ordersTotal.WithLabelValues(orderRejected))

	assert.Equal(t, float64(trials), accepted+rejected, "every valid order is accepted or rejected")
	// 3 sigma for p=0.8, n=1000 is ~38
	assert.InDelta(t, 800, accepted, 38, "acceptance rate outside tolerance")
	assert.Equal(t, 0.0, testutil.ToFloat64(ordersTotal.WithLabelValues(orderRejectedInvalid)))
}

func TestCreateOrderObservesInsertDuration(t *testing.T) {
	setupTest()
	configLock.Lock()
	config.Simulation.OrderSuccessProbability = 1.0
	configLock.Unlock()

	router := setupRoutes()
	postOrder(t, router, `{"customer":"user_1","amount":10}`)

	families, err := metricsRegistry.Gather()
	require.NoError(t, err)
	var found bool
	for _, mf := range families {
		if mf.GetName() != "database_query_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "query_type" && lp.GetValue() == "insert" {
					found = true
					assert.Equal(t, uint64(1), m.GetHistogram().GetSampleCount())
				}
			}
		}
	}
	require.True(t, found, "insert query duration not observed")
}

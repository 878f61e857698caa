package handler

import (
	"net/http"
	"time"
)

// BrokerHealth reports event broker connectivity.
type BrokerHealth interface {
	IsConnected() bool
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	startTime time.Time
	broker    BrokerHealth
}

// NewHealthHandler creates a health handler. broker may be nil when event
// publishing is disabled; readiness then has nothing to check.
func NewHealthHandler(broker BrokerHealth) *HealthHandler {
	return &HealthHandler{
		startTime: time.Now(),
		broker:    broker,
	}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.startTime).Seconds()),
	})
}

// Ready handles GET /ready. A configured but disconnected event broker makes
// the instance not ready.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.broker != nil && !h.broker.IsConnected() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"events": "disconnected",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

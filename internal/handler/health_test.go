package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubBroker struct {
	connected bool
}

func (s *stubBroker) IsConnected() bool { return s.connected }

func TestReadyWithoutBroker(t *testing.T) {
	h := NewHealthHandler(nil)

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestReadyReportsBrokerState(t *testing.T) {
	broker := &stubBroker{connected: true}
	h := NewHealthHandler(broker)

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 while connected, got %d", rec.Code)
	}

	broker.connected = false
	rec = httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 while disconnected, got %d", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	h := NewHealthHandler(nil)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mindful-space/wellness-platform/internal/middleware"
	"github.com/mindful-space/wellness-platform/internal/model"
	"github.com/mindful-space/wellness-platform/internal/service"
	"github.com/mindful-space/wellness-platform/pkg/logger"
	"github.com/mindful-space/wellness-platform/pkg/metrics"
)

const heartbeatInterval = 30 * time.Second

// StreamHandler serves SSE endpoints pushing full-state snapshots. A client
// that reconnects gets the current state immediately; updates missed while
// disconnected are not replayed.
type StreamHandler struct {
	svc    *service.ConversationService
	logger *logger.Logger
}

// NewStreamHandler creates a stream handler.
func NewStreamHandler(svc *service.ConversationService, log *logger.Logger) *StreamHandler {
	return &StreamHandler{svc: svc, logger: log}
}

// Conversation handles GET /conversations/{conversationID}/stream.
func (h *StreamHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	conversationID := chi.URLParam(r, "conversationID")
	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	// Buffered so a slow client drops intermediate snapshots instead of
	// blocking the store's notify path. The next snapshot carries full
	// state, so nothing is lost semantically.
	updates := make(chan interface{}, 4)
	unsubscribe, err := h.svc.Subscribe(r.Context(), userID, conversationID, func(conv *model.Conversation) {
		select {
		case updates <- conv:
		default:
		}
	})
	if err != nil {
		h.logger.Error("conversation subscribe failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to subscribe")
		return
	}
	defer unsubscribe()

	h.stream(w, r, flusher, updates)
}

// ConversationList handles GET /conversations/stream.
func (h *StreamHandler) ConversationList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	updates := make(chan interface{}, 4)
	unsubscribe, err := h.svc.SubscribeList(r.Context(), userID, func(items []model.ConversationListItem) {
		select {
		case updates <- items:
		default:
		}
	})
	if err != nil {
		h.logger.Error("list subscribe failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to subscribe")
		return
	}
	defer unsubscribe()

	h.stream(w, r, flusher, updates)
}

func (h *StreamHandler) stream(w http.ResponseWriter, r *http.Request, flusher http.Flusher, updates chan interface{}) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	metrics.IncrementSSEConnections()
	defer metrics.DecrementSSEConnections()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		case payload := <-updates:
			if err := sendSSEEvent(w, flusher, "snapshot", payload); err != nil {
				h.logger.Debug("sse write failed", zap.Error(err))
				return
			}
		}
	}
}

func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal sse payload: %w", err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

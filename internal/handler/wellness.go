package handler

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/mindful-space/wellness-platform/internal/middleware"
	"github.com/mindful-space/wellness-platform/internal/model"
	"github.com/mindful-space/wellness-platform/internal/service"
	"github.com/mindful-space/wellness-platform/pkg/logger"
)

// WellnessHandler serves mood tracking and wellness score endpoints.
type WellnessHandler struct {
	svc    *service.WellnessService
	logger *logger.Logger
}

// NewWellnessHandler creates a wellness handler.
func NewWellnessHandler(svc *service.WellnessService, log *logger.Logger) *WellnessHandler {
	return &WellnessHandler{svc: svc, logger: log}
}

// SaveMood handles POST /mood.
func (h *WellnessHandler) SaveMood(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req model.SaveMoodRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateMoodScore(req.MoodScore); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateSentiment(req.Sentiment); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.svc.SaveMood(r.Context(), userID, &req)
	if err != nil {
		h.logger.Error("save mood failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save mood")
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// History handles GET /mood/history.
func (h *WellnessHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := h.svc.History(r.Context(), userID, limit)
	if err != nil {
		h.logger.Error("mood history failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load mood history")
		return
	}
	if entries == nil {
		entries = []model.MoodEntry{}
	}

	writeJSON(w, http.StatusOK, model.MoodHistoryResponse{
		Entries: entries,
		Total:   len(entries),
	})
}

// Current handles GET /mood/current, returning the most recent entry.
func (h *WellnessHandler) Current(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	entries, err := h.svc.History(r.Context(), userID, 1)
	if err != nil {
		h.logger.Error("current mood failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load current mood")
		return
	}
	if len(entries) == 0 {
		writeError(w, http.StatusNotFound, "no mood recorded yet")
		return
	}

	writeJSON(w, http.StatusOK, entries[0])
}

// Score handles GET /wellness/score.
func (h *WellnessHandler) Score(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	score, err := h.svc.Score(r.Context(), userID)
	if err != nil {
		h.logger.Error("wellness score failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to compute wellness score")
		return
	}

	writeJSON(w, http.StatusOK, score)
}

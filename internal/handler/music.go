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

// MusicHandler serves recommendations, video search, and preferences.
type MusicHandler struct {
	svc    *service.MusicService
	logger *logger.Logger
}

// NewMusicHandler creates a music handler.
func NewMusicHandler(svc *service.MusicService, log *logger.Logger) *MusicHandler {
	return &MusicHandler{svc: svc, logger: log}
}

// Recommendations handles GET /music/recommendations.
func (h *MusicHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	mood := r.URL.Query().Get("mood")
	if mood == "" {
		writeError(w, http.StatusBadRequest, "mood is required")
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

	recs, err := h.svc.Recommendations(r.Context(), mood, limit)
	if err != nil {
		h.logger.Error("recommendations failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load recommendations")
		return
	}
	if recs == nil {
		recs = []model.MusicRecommendation{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": recs,
		"total":           len(recs),
	})
}

// Search handles GET /music/search. Never errors; worst case is the fixed
// fallback list.
func (h *MusicHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	videos := h.svc.Search(r.Context(), query)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"videos": videos,
		"total":  len(videos),
	})
}

// SavePreference handles POST /music/preferences.
func (h *MusicHandler) SavePreference(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req model.SavePreferenceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Mood == "" || req.YouTubeID == "" {
		writeError(w, http.StatusBadRequest, "mood and youtube_id are required")
		return
	}

	if err := h.svc.SavePreference(r.Context(), userID, &req); err != nil {
		h.logger.Error("save preference failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save preference")
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Preferences handles GET /music/preferences.
func (h *MusicHandler) Preferences(w http.ResponseWriter, r *http.Request) {
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

	prefs, err := h.svc.Preferences(r.Context(), userID, limit)
	if err != nil {
		h.logger.Error("preferences failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load preferences")
		return
	}
	if prefs == nil {
		prefs = []model.MusicPreference{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"preferences": prefs,
		"total":       len(prefs),
	})
}

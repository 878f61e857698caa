package handler

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mindful-space/wellness-platform/internal/middleware"
	"github.com/mindful-space/wellness-platform/internal/service"
	"github.com/mindful-space/wellness-platform/pkg/logger"
)

// UserHandler serves user profile and community stats endpoints.
type UserHandler struct {
	svc    *service.UserService
	logger *logger.Logger
}

// NewUserHandler creates a user handler.
func NewUserHandler(svc *service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: log}
}

// Count handles GET /users/count. Served without authentication so the
// landing page can show community size.
func (h *UserHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.Count(r.Context())
	if err != nil {
		h.logger.Error("user count failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to count users")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":     count,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// EnsureProfile handles POST /users/profile, creating the profile document
// on first sign-in.
func (h *UserHandler) EnsureProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	email, _ := middleware.GetEmail(r.Context())

	var req struct {
		DisplayName string `json:"display_name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.EnsureUser(r.Context(), userID, email, req.DisplayName); err != nil {
		h.logger.Error("ensure profile failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mindful-space/wellness-platform/internal/middleware"
	"github.com/mindful-space/wellness-platform/internal/model"
	"github.com/mindful-space/wellness-platform/internal/service"
	"github.com/mindful-space/wellness-platform/pkg/logger"
)

// ChatHandler serves the chat session endpoints.
type ChatHandler struct {
	chat   *service.ChatService
	logger *logger.Logger
}

// NewChatHandler creates a chat handler.
func NewChatHandler(chat *service.ChatService, log *logger.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, logger: log}
}

// Send handles POST /chat/messages. A send with no active session starts a
// new conversation; response generation failures come back as a 200 with an
// error string so the client can keep the user's message on screen.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req model.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateMessageContent(req.Content); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.chat.SendMessage(r.Context(), userID, req.Content)
	if err != nil {
		h.logger.Error("chat send failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to send message")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Session handles GET /chat/messages. With ?conversation_id= it loads that
// conversation into the session first.
func (h *ChatHandler) Session(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	conversationID := r.URL.Query().Get("conversation_id")
	if conversationID == "" {
		writeError(w, http.StatusBadRequest, "conversation_id is required")
		return
	}

	resp, err := h.chat.LoadConversation(r.Context(), userID, conversationID)
	if err != nil {
		h.logger.Error("chat load failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load conversation")
		return
	}
	if resp == nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// End handles DELETE /chat/messages. The next send starts a new conversation.
func (h *ChatHandler) End(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	h.chat.EndSession(userID)
	w.WriteHeader(http.StatusNoContent)
}

package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mindful-space/wellness-platform/internal/llm"
	"github.com/mindful-space/wellness-platform/internal/middleware"
	"github.com/mindful-space/wellness-platform/internal/model"
	"github.com/mindful-space/wellness-platform/pkg/logger"
	"github.com/mindful-space/wellness-platform/pkg/metrics"
)

const (
	// companionUnavailableMsg is shown to the user when response generation
	// fails. The user's message is already persisted and stays in place.
	companionUnavailableMsg = "I'm having trouble responding right now. Please try again in a moment."

	systemPrompt = "You are a warm, supportive mental wellness companion. " +
		"Listen carefully, validate feelings, and gently encourage reflection. " +
		"Keep responses short and conversational. You are not a therapist and " +
		"do not give medical advice; suggest professional help for anything serious."
)

// ChatSession holds one user's active conversation state. The message slice
// mirrors what the store holds for the active conversation.
type ChatSession struct {
	mu             sync.Mutex
	ConversationID string
	Messages       []model.Message
}

// ChatService drives the chat companion: it maintains per-user sessions,
// persists messages, and generates assistant replies.
type ChatService struct {
	conversations *ConversationService
	llm           llm.Client
	logger        *logger.Logger

	model         string
	maxTokens     int
	historyWindow int

	mu       sync.Mutex
	sessions map[string]*ChatSession
}

// ChatConfig tunes the chat service.
type ChatConfig struct {
	Model         string
	MaxTokens     int
	HistoryWindow int
}

// NewChatService creates a chat service.
func NewChatService(conversations *ConversationService, client llm.Client, cfg ChatConfig, log *logger.Logger) *ChatService {
	historyWindow := cfg.HistoryWindow
	if historyWindow <= 0 {
		historyWindow = 20
	}
	return &ChatService{
		conversations: conversations,
		llm:           client,
		logger:        log,
		model:         cfg.Model,
		maxTokens:     cfg.MaxTokens,
		historyWindow: historyWindow,
		sessions:      make(map[string]*ChatSession),
	}
}

func (s *ChatService) session(userID string) *ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = &ChatSession{}
		s.sessions[userID] = sess
	}
	return sess
}

// SendMessage sends a user message through the active session. The message
// is persisted first; if response generation then fails, the message stays
// and the response carries an error string instead of an assistant reply.
// Sends for the same user are serialized.
func (s *ChatService) SendMessage(ctx context.Context, userID, content string) (*model.ChatResponse, error) {
	if err := middleware.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := middleware.ValidateMessageContent(content); err != nil {
		return nil, err
	}

	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.ConversationID == "" {
		conv, err := s.conversations.Create(ctx, userID, content)
		if err != nil {
			return nil, err
		}
		sess.ConversationID = conv.ID
		sess.Messages = append([]model.Message(nil), conv.Messages...)
	} else {
		msg, err := s.conversations.AddMessage(ctx, userID, sess.ConversationID, model.RoleUser, content)
		if err != nil {
			return nil, err
		}
		sess.Messages = append(sess.Messages, *msg)
	}

	reply, err := s.generate(ctx, sess.Messages)
	if err != nil {
		s.logger.Warn("response generation failed",
			zap.String("user_id", userID),
			zap.String("conversation_id", sess.ConversationID),
			zap.Error(err))
		return &model.ChatResponse{
			ConversationID: sess.ConversationID,
			Messages:       snapshot(sess.Messages),
			Error:          companionUnavailableMsg,
		}, nil
	}

	assistant, err := s.conversations.AddMessage(ctx, userID, sess.ConversationID, model.RoleAssistant, reply)
	if err != nil {
		// The reply was never persisted, so it does not enter the session
		// either; cache and store stay in sync.
		s.logger.Error("failed to persist assistant reply",
			zap.String("user_id", userID),
			zap.String("conversation_id", sess.ConversationID),
			zap.Error(err))
		return &model.ChatResponse{
			ConversationID: sess.ConversationID,
			Messages:       snapshot(sess.Messages),
			Error:          companionUnavailableMsg,
		}, nil
	}
	sess.Messages = append(sess.Messages, *assistant)

	return &model.ChatResponse{
		ConversationID: sess.ConversationID,
		Messages:       snapshot(sess.Messages),
	}, nil
}

// LoadConversation switches the session to an existing conversation.
// Returns (nil, nil) when the conversation does not exist.
func (s *ChatService) LoadConversation(ctx context.Context, userID, conversationID string) (*model.ChatResponse, error) {
	conv, err := s.conversations.Get(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, nil
	}

	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.ConversationID = conv.ID
	sess.Messages = append([]model.Message(nil), conv.Messages...)

	return &model.ChatResponse{
		ConversationID: sess.ConversationID,
		Messages:       snapshot(sess.Messages),
	}, nil
}

// EndSession clears the user's active session. The next send starts a new
// conversation.
func (s *ChatService) EndSession(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

func (s *ChatService) generate(ctx context.Context, history []model.Message) (string, error) {
	window := history
	if len(window) > s.historyWindow {
		window = window[len(window)-s.historyWindow:]
	}

	messages := make([]llm.ChatMessage, 0, len(window)+1)
	messages = append(messages, llm.ChatMessage{Role: "system", Content: systemPrompt})
	for _, msg := range window {
		messages = append(messages, llm.ChatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	start := time.Now()
	resp, err := s.llm.Complete(ctx, &llm.CompletionRequest{
		Model:     s.model,
		Messages:  messages,
		MaxTokens: s.maxTokens,
	})
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordLLMRequest(s.llm.Name(), status, time.Since(start).Seconds())
	if err != nil {
		return "", err
	}

	s.logger.Debug("response generated",
		zap.String("provider", s.llm.Name()),
		zap.String("model", resp.Model),
		zap.String("tokens", strconv.Itoa(resp.TokensIn)+"/"+strconv.Itoa(resp.TokensOut)))

	return resp.Content, nil
}

func snapshot(messages []model.Message) []model.Message {
	out := make([]model.Message, len(messages))
	copy(out, messages)
	return out
}

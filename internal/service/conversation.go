package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mindful-space/wellness-platform/internal/middleware"
	"github.com/mindful-space/wellness-platform/internal/model"
	"github.com/mindful-space/wellness-platform/internal/store"
	"github.com/mindful-space/wellness-platform/pkg/logger"
	"github.com/mindful-space/wellness-platform/pkg/metrics"
)

const (
	titleMaxWords = 6
	titleMaxRunes = 50
)

// ConversationService manages conversation lifecycle and message history.
type ConversationService struct {
	store  store.ConversationStore
	events EventPublisher
	logger *logger.Logger

	now func() time.Time
}

// NewConversationService creates a conversation service. events may be nil.
func NewConversationService(st store.ConversationStore, events EventPublisher, log *logger.Logger) *ConversationService {
	return &ConversationService{
		store:  st,
		events: events,
		logger: log,
		now:    time.Now,
	}
}

// Create starts a new conversation seeded with the user's first message.
// The title is derived from that message.
func (s *ConversationService) Create(ctx context.Context, userID, content string) (*model.Conversation, error) {
	if err := middleware.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := middleware.ValidateMessageContent(content); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	msg := model.Message{
		ID:        newID(),
		Role:      model.RoleUser,
		Content:   content,
		Timestamp: now,
	}
	conv := &model.Conversation{
		ID:          newID(),
		UserID:      userID,
		Title:       DeriveTitle(content),
		CreatedAt:   now,
		UpdatedAt:   now,
		Messages:    []model.Message{msg},
		LastMessage: content,
	}

	if err := s.store.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	metrics.ConversationsTotal.Inc()
	metrics.MessagesTotal.WithLabelValues(string(model.RoleUser)).Inc()
	s.publish(ctx, newEvent(userID, conv.ID, model.EventTypeConversationCreated, now))

	return conv, nil
}

// Get fetches a conversation. Returns (nil, nil) when it does not exist.
func (s *ConversationService) Get(ctx context.Context, userID, conversationID string) (*model.Conversation, error) {
	if err := middleware.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := middleware.ValidateConversationID(conversationID); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, userID, conversationID)
}

// List returns the user's conversations, most recently updated first.
func (s *ConversationService) List(ctx context.Context, userID string) ([]model.ConversationListItem, error) {
	if err := middleware.ValidateUserID(userID); err != nil {
		return nil, err
	}
	items, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return items, nil
}

// AddMessage appends a message to an existing conversation.
func (s *ConversationService) AddMessage(ctx context.Context, userID, conversationID string, role model.Role, content string) (*model.Message, error) {
	if err := middleware.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := middleware.ValidateConversationID(conversationID); err != nil {
		return nil, err
	}
	if err := middleware.ValidateRole(string(role)); err != nil {
		return nil, err
	}
	if err := middleware.ValidateMessageContent(content); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	msg := model.Message{
		ID:        newID(),
		Role:      role,
		Content:   content,
		Timestamp: now,
	}

	if err := s.store.AppendMessage(ctx, userID, conversationID, msg); err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}

	metrics.MessagesTotal.WithLabelValues(string(role)).Inc()
	s.publish(ctx, newEvent(userID, conversationID, model.EventTypeConversationUpdated, now))

	return &msg, nil
}

// UpdateTitle renames a conversation.
func (s *ConversationService) UpdateTitle(ctx context.Context, userID, conversationID, title string) error {
	if err := middleware.ValidateUserID(userID); err != nil {
		return err
	}
	if err := middleware.ValidateConversationID(conversationID); err != nil {
		return err
	}
	if err := middleware.ValidateTitle(title); err != nil {
		return err
	}

	now := s.now().UTC()
	if err := s.store.UpdateTitle(ctx, userID, conversationID, title, now); err != nil {
		return fmt.Errorf("update title: %w", err)
	}

	s.publish(ctx, newEvent(userID, conversationID, model.EventTypeConversationUpdated, now))
	return nil
}

// Delete removes a single conversation.
func (s *ConversationService) Delete(ctx context.Context, userID, conversationID string) error {
	if err := middleware.ValidateUserID(userID); err != nil {
		return err
	}
	if err := middleware.ValidateConversationID(conversationID); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, userID, conversationID); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}

	s.publish(ctx, newEvent(userID, conversationID, model.EventTypeConversationDeleted, s.now().UTC()))
	return nil
}

// DeleteAll removes every conversation for the user, one delete at a time.
// A failure part way through leaves earlier deletions in place.
func (s *ConversationService) DeleteAll(ctx context.Context, userID string) (int, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, item := range items {
		if err := s.Delete(ctx, userID, item.ID); err != nil {
			return deleted, fmt.Errorf("delete conversation %s: %w", item.ID, err)
		}
		deleted++
	}
	return deleted, nil
}

// Subscribe registers an observer for one conversation's full state.
func (s *ConversationService) Subscribe(ctx context.Context, userID, conversationID string, fn func(*model.Conversation)) (store.Unsubscribe, error) {
	if err := middleware.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := middleware.ValidateConversationID(conversationID); err != nil {
		return nil, err
	}
	return s.store.SubscribeToConversation(ctx, userID, conversationID, fn)
}

// SubscribeList registers an observer for the user's conversation list.
func (s *ConversationService) SubscribeList(ctx context.Context, userID string, fn func([]model.ConversationListItem)) (store.Unsubscribe, error) {
	if err := middleware.ValidateUserID(userID); err != nil {
		return nil, err
	}
	return s.store.SubscribeToConversations(ctx, userID, fn)
}

func (s *ConversationService) publish(ctx context.Context, event *model.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("type", string(event.Type)),
			zap.Error(err))
	}
}

// DeriveTitle builds a conversation title from the first message: up to six
// words, truncated with an ellipsis past fifty characters.
func DeriveTitle(content string) string {
	words := strings.Fields(content)
	if len(words) > titleMaxWords {
		words = words[:titleMaxWords]
	}
	title := strings.Join(words, " ")

	runes := []rune(title)
	if len(runes) > titleMaxRunes {
		title = string(runes[:titleMaxRunes-3]) + "..."
	}
	if title == "" {
		title = "New Conversation"
	}
	return title
}

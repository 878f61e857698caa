// Package memory provides in-memory store implementations used by tests
// and local development runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mindful-space/wellness-platform/internal/model"
	"github.com/mindful-space/wellness-platform/internal/store"
)

type convObserver func(*model.Conversation)
type listObserver func([]model.ConversationListItem)

// ConversationStore is a mutex-guarded in-memory ConversationStore with a
// local observer registry standing in for the document store's push channel.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[string]map[string]*model.Conversation // userID -> conversationID -> conversation

	nextObserver  int
	convObservers map[string]map[int]convObserver // userID/conversationID -> observers
	listObservers map[string]map[int]listObserver // userID -> observers
}

// NewConversationStore creates an empty in-memory conversation store.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		conversations: make(map[string]map[string]*model.Conversation),
		convObservers: make(map[string]map[int]convObserver),
		listObservers: make(map[string]map[int]listObserver),
	}
}

func convKey(userID, conversationID string) string {
	return userID + "/" + conversationID
}

func (s *ConversationStore) Create(ctx context.Context, conv *model.Conversation) error {
	s.mu.Lock()
	if _, ok := s.conversations[conv.UserID]; !ok {
		s.conversations[conv.UserID] = make(map[string]*model.Conversation)
	}
	if _, exists := s.conversations[conv.UserID][conv.ID]; exists {
		s.mu.Unlock()
		return fmt.Errorf("conversation %s already exists", conv.ID)
	}
	c := cloneConversation(conv)
	s.conversations[conv.UserID][conv.ID] = c
	s.mu.Unlock()

	s.notify(conv.UserID, conv.ID)
	return nil
}

func (s *ConversationStore) Get(ctx context.Context, userID, conversationID string) (*model.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[userID][conversationID]
	if !ok {
		return nil, nil
	}
	return cloneConversation(conv), nil
}

func (s *ConversationStore) List(ctx context.Context, userID string) ([]model.ConversationListItem, error) {
	s.mu.RLock()
	items := s.listLocked(userID)
	s.mu.RUnlock()
	return items, nil
}

func (s *ConversationStore) listLocked(userID string) []model.ConversationListItem {
	items := make([]model.ConversationListItem, 0, len(s.conversations[userID]))
	for _, conv := range s.conversations[userID] {
		items = append(items, model.ConversationListItem{
			ID:          conv.ID,
			Title:       conv.Title,
			UpdatedAt:   conv.UpdatedAt,
			LastMessage: conv.LastMessage,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
	return items
}

func (s *ConversationStore) AppendMessage(ctx context.Context, userID, conversationID string, msg model.Message) error {
	s.mu.Lock()
	conv, ok := s.conversations[userID][conversationID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("conversation %s: %w", conversationID, store.ErrNotFound)
	}
	conv.Messages = append(conv.Messages, msg)
	conv.LastMessage = msg.Content
	conv.UpdatedAt = msg.Timestamp
	s.mu.Unlock()

	s.notify(userID, conversationID)
	return nil
}

func (s *ConversationStore) UpdateTitle(ctx context.Context, userID, conversationID, title string, updatedAt time.Time) error {
	s.mu.Lock()
	conv, ok := s.conversations[userID][conversationID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("conversation %s: %w", conversationID, store.ErrNotFound)
	}
	conv.Title = title
	conv.UpdatedAt = updatedAt
	s.mu.Unlock()

	s.notify(userID, conversationID)
	return nil
}

func (s *ConversationStore) Delete(ctx context.Context, userID, conversationID string) error {
	s.mu.Lock()
	delete(s.conversations[userID], conversationID)
	s.mu.Unlock()

	s.notifyList(userID)
	return nil
}

func (s *ConversationStore) SubscribeToConversation(ctx context.Context, userID, conversationID string, fn func(*model.Conversation)) (store.Unsubscribe, error) {
	key := convKey(userID, conversationID)

	s.mu.Lock()
	if _, ok := s.convObservers[key]; !ok {
		s.convObservers[key] = make(map[int]convObserver)
	}
	id := s.nextObserver
	s.nextObserver++
	s.convObservers[key][id] = fn
	conv := s.conversations[userID][conversationID]
	var snapshot *model.Conversation
	if conv != nil {
		snapshot = cloneConversation(conv)
	}
	s.mu.Unlock()

	// Fresh full state on attach, no delta replay.
	if snapshot != nil {
		fn(snapshot)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.convObservers[key], id)
			s.mu.Unlock()
		})
	}, nil
}

func (s *ConversationStore) SubscribeToConversations(ctx context.Context, userID string, fn func([]model.ConversationListItem)) (store.Unsubscribe, error) {
	s.mu.Lock()
	if _, ok := s.listObservers[userID]; !ok {
		s.listObservers[userID] = make(map[int]listObserver)
	}
	id := s.nextObserver
	s.nextObserver++
	s.listObservers[userID][id] = fn
	snapshot := s.listLocked(userID)
	s.mu.Unlock()

	fn(snapshot)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listObservers[userID], id)
			s.mu.Unlock()
		})
	}, nil
}

// notify delivers full-state snapshots to observers of the conversation and
// of the owning user's list.
func (s *ConversationStore) notify(userID, conversationID string) {
	s.mu.RLock()
	var snapshot *model.Conversation
	if conv, ok := s.conversations[userID][conversationID]; ok {
		snapshot = cloneConversation(conv)
	}
	observers := make([]convObserver, 0, len(s.convObservers[convKey(userID, conversationID)]))
	for _, fn := range s.convObservers[convKey(userID, conversationID)] {
		observers = append(observers, fn)
	}
	s.mu.RUnlock()

	if snapshot != nil {
		for _, fn := range observers {
			fn(snapshot)
		}
	}
	s.notifyList(userID)
}

func (s *ConversationStore) notifyList(userID string) {
	s.mu.RLock()
	items := s.listLocked(userID)
	observers := make([]listObserver, 0, len(s.listObservers[userID]))
	for _, fn := range s.listObservers[userID] {
		observers = append(observers, fn)
	}
	s.mu.RUnlock()

	for _, fn := range observers {
		fn(items)
	}
}

func cloneConversation(conv *model.Conversation) *model.Conversation {
	c := *conv
	c.Messages = make([]model.Message, len(conv.Messages))
	copy(c.Messages, conv.Messages)
	return &c
}

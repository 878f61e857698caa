// Package store defines the persistence interfaces for the wellness platform.
// The firestore subpackage implements them against the hosted document store;
// the memory subpackage implements them in-process for tests and local runs.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/mindful-space/wellness-platform/internal/model"
)

// ErrNotFound is returned when a write targets a document that does not exist.
var ErrNotFound = errors.New("not found")

// Unsubscribe cancels a subscription registration. Safe to call more than once.
type Unsubscribe func()

// ConversationStore persists conversations under a user's namespace and
// pushes full-state snapshots to registered observers on every change.
// Observers get the current full state fresh on (re)attach; there is no
// replay of events missed while detached.
type ConversationStore interface {
	Create(ctx context.Context, conv *model.Conversation) error

	// Get returns (nil, nil) when the conversation does not exist.
	Get(ctx context.Context, userID, conversationID string) (*model.Conversation, error)

	// List returns the user's conversations ordered by UpdatedAt descending.
	List(ctx context.Context, userID string) ([]model.ConversationListItem, error)

	// AppendMessage atomically appends msg to the conversation's message
	// sequence and refreshes UpdatedAt and the LastMessage preview.
	// Returns ErrNotFound if the conversation does not exist.
	AppendMessage(ctx context.Context, userID, conversationID string, msg model.Message) error

	// UpdateTitle renames the conversation and stamps UpdatedAt so list
	// ordering tracks the rename on every backend.
	UpdateTitle(ctx context.Context, userID, conversationID, title string, updatedAt time.Time) error
	Delete(ctx context.Context, userID, conversationID string) error

	SubscribeToConversation(ctx context.Context, userID, conversationID string, fn func(*model.Conversation)) (Unsubscribe, error)
	SubscribeToConversations(ctx context.Context, userID string, fn func([]model.ConversationListItem)) (Unsubscribe, error)
}

// MoodStore persists mood entries under a user's namespace.
type MoodStore interface {
	SaveMood(ctx context.Context, userID string, entry *model.MoodEntry) error

	// MoodHistory returns up to limit entries ordered by Timestamp descending.
	MoodHistory(ctx context.Context, userID string, limit int) ([]model.MoodEntry, error)
}

// MusicStore persists curated recommendations and per-user preferences.
type MusicStore interface {
	Recommendations(ctx context.Context, mood string, limit int) ([]model.MusicRecommendation, error)
	AddRecommendation(ctx context.Context, rec *model.MusicRecommendation) error
	SavePreference(ctx context.Context, userID string, pref *model.MusicPreference) error
	Preferences(ctx context.Context, userID string, limit int) ([]model.MusicPreference, error)
}

// UserStore manages user profile documents.
type UserStore interface {
	EnsureUser(ctx context.Context, userID, email, displayName string) error
	CountUsers(ctx context.Context) (int, error)
}

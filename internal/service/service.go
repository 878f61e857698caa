// Package service implements the application's business logic on top of the
// store interfaces. Services receive their dependencies explicitly; nothing
// here reaches for globals.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mindful-space/wellness-platform/internal/model"
)

// EventPublisher publishes domain events for downstream consumers.
// A nil publisher disables event publishing.
type EventPublisher interface {
	Publish(ctx context.Context, event *model.Event) error
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func newEvent(userID, conversationID string, typ model.EventType, at time.Time) *model.Event {
	return &model.Event{
		ID:             newID(),
		UserID:         userID,
		ConversationID: conversationID,
		Type:           typ,
		CreatedAt:      at,
	}
}

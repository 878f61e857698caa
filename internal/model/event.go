package model

import (
	"time"
)

// EventType represents the type of a domain event.
type EventType string

const (
	EventTypeConversationCreated EventType = "conversation_created"
	EventTypeConversationUpdated EventType = "conversation_updated"
	EventTypeConversationDeleted EventType = "conversation_deleted"
	EventTypeMoodRecorded        EventType = "mood_recorded"
)

// Event is a domain event published for downstream consumers.
type Event struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	ConversationID string    `json:"conversation_id,omitempty"`
	Type           EventType `json:"type"`
	CreatedAt      time.Time `json:"created_at"`
}

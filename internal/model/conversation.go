// Package model defines data structures for the wellness platform.
package model

import (
	"time"
)

// Conversation is a titled, ordered sequence of chat messages owned by one user.
// Messages are append-only and ordered by insertion.
type Conversation struct {
	ID          string    `json:"id" firestore:"id"`
	UserID      string    `json:"user_id" firestore:"user_id"`
	Title       string    `json:"title" firestore:"title"`
	CreatedAt   time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updated_at"`
	Messages    []Message `json:"messages" firestore:"messages"`
	LastMessage string    `json:"last_message,omitempty" firestore:"last_message"`
}

// ConversationListItem is the projection of a Conversation used in list views.
type ConversationListItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	UpdatedAt   time.Time `json:"updated_at"`
	LastMessage string    `json:"last_message"`
}

// CreateConversationRequest is the request to create a new conversation.
// The title is derived from the initial message content.
type CreateConversationRequest struct {
	Content string `json:"content"`
}

// CreateConversationResponse is the response after creating a conversation.
type CreateConversationResponse struct {
	ID           string        `json:"id"`
	Conversation *Conversation `json:"conversation"`
}

// UpdateConversationRequest is the request to rename a conversation.
type UpdateConversationRequest struct {
	Title string `json:"title"`
}

// ListConversationsResponse is the response for listing conversations.
type ListConversationsResponse struct {
	Conversations []ConversationListItem `json:"conversations"`
	Total         int                    `json:"total"`
}

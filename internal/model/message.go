package model

import (
	"time"
)

// Role represents the role of a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat message. Immutable once created.
type Message struct {
	ID        string    `json:"id" firestore:"id"`
	Role      Role      `json:"role" firestore:"role"`
	Content   string    `json:"content" firestore:"content"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
}

// AddMessageRequest is the request to append a message to a conversation.
type AddMessageRequest struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the request to send a message through the chat session.
type ChatRequest struct {
	Content string `json:"content"`
}

// ChatResponse is the chat session state returned after a send.
type ChatResponse struct {
	ConversationID string    `json:"conversation_id,omitempty"`
	Messages       []Message `json:"messages"`
	Error          string    `json:"error,omitempty"`
}

package middleware

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxContentLength = 8000
	maxTitleLength   = 200
	maxIDLength      = 128
)

// ValidateUserID checks that the user ID is present and well-formed.
func ValidateUserID(userID string) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if len(userID) > maxIDLength {
		return fmt.Errorf("user ID too long")
	}
	return nil
}

// ValidateConversationID checks that the conversation ID is present and well-formed.
func ValidateConversationID(id string) error {
	if id == "" {
		return fmt.Errorf("conversation ID is required")
	}
	if len(id) > maxIDLength {
		return fmt.Errorf("conversation ID too long")
	}
	return nil
}

// ValidateMessageContent checks that message content is non-empty and bounded.
func ValidateMessageContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("message content is required")
	}
	if utf8.RuneCountInString(content) > maxContentLength {
		return fmt.Errorf("message content exceeds %d characters", maxContentLength)
	}
	return nil
}

// ValidateTitle checks that a conversation title is non-empty and bounded.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return fmt.Errorf("title exceeds %d characters", maxTitleLength)
	}
	return nil
}

// ValidateMoodScore checks that a mood score is within the 0 to 10 scale.
func ValidateMoodScore(score float64) error {
	if score < 0 || score > 10 {
		return fmt.Errorf("mood score must be between 0 and 10")
	}
	return nil
}

// ValidateSentiment checks that a sentiment label is present.
func ValidateSentiment(sentiment string) error {
	if strings.TrimSpace(sentiment) == "" {
		return fmt.Errorf("sentiment is required")
	}
	return nil
}

// ValidateRole checks that a message role is one of the known roles.
func ValidateRole(role string) error {
	switch role {
	case "user", "assistant":
		return nil
	default:
		return fmt.Errorf("role must be user or assistant")
	}
}

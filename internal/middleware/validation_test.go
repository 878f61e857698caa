package middleware

import (
	"strings"
	"testing"
)

func TestValidateMessageContent(t *testing.T) {
	if err := ValidateMessageContent("hello"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateMessageContent("   "); err == nil {
		t.Error("expected error for blank content")
	}
	if err := ValidateMessageContent(strings.Repeat("a", maxContentLength+1)); err == nil {
		t.Error("expected error for oversized content")
	}
	if err := ValidateMessageContent(strings.Repeat("a", maxContentLength)); err != nil {
		t.Errorf("content at the limit should pass: %v", err)
	}
}

func TestValidateMoodScore(t *testing.T) {
	for _, score := range []float64{0, 5.5, 10} {
		if err := ValidateMoodScore(score); err != nil {
			t.Errorf("score %v should be valid: %v", score, err)
		}
	}
	for _, score := range []float64{-0.1, 10.1, 100} {
		if err := ValidateMoodScore(score); err == nil {
			t.Errorf("score %v should be rejected", score)
		}
	}
}

func TestValidateRole(t *testing.T) {
	if err := ValidateRole("user"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateRole("assistant"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateRole("system"); err == nil {
		t.Error("expected error for system role")
	}
	if err := ValidateRole(""); err == nil {
		t.Error("expected error for empty role")
	}
}

func TestValidateTitle(t *testing.T) {
	if err := ValidateTitle("My check-in"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateTitle(" "); err == nil {
		t.Error("expected error for blank title")
	}
	if err := ValidateTitle(strings.Repeat("t", maxTitleLength+1)); err == nil {
		t.Error("expected error for oversized title")
	}
}

func TestValidateIDs(t *testing.T) {
	if err := ValidateUserID(""); err == nil {
		t.Error("expected error for empty user ID")
	}
	if err := ValidateUserID(strings.Repeat("u", maxIDLength+1)); err == nil {
		t.Error("expected error for oversized user ID")
	}
	if err := ValidateConversationID("conv-1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateConversationID(""); err == nil {
		t.Error("expected error for empty conversation ID")
	}
}

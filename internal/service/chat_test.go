package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindful-space/wellness-platform/internal/llm"
	"github.com/mindful-space/wellness-platform/internal/model"
	"github.com/mindful-space/wellness-platform/pkg/logger"
)

func newTestChatService(mock *llm.MockClient) (*ChatService, *ConversationService) {
	conversations := newTestConversationService()
	chat := NewChatService(conversations, mock, ChatConfig{HistoryWindow: 10}, logger.NewNop())
	return chat, conversations
}

func TestSendMessageStartsConversation(t *testing.T) {
	chat, conversations := newTestChatService(llm.NewMockClient())
	ctx := context.Background()

	resp, err := chat.SendMessage(ctx, "user-1", "I'm feeling anxious today")
	require.NoError(t, err)
	require.Empty(t, resp.Error)
	require.NotEmpty(t, resp.ConversationID)
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, model.RoleUser, resp.Messages[0].Role)
	assert.Equal(t, "I'm feeling anxious today", resp.Messages[0].Content)
	assert.Equal(t, model.RoleAssistant, resp.Messages[1].Role)
	assert.NotEmpty(t, resp.Messages[1].Content)

	// Both sides of the exchange are persisted.
	conv, err := conversations.Get(ctx, "user-1", resp.ConversationID)
	require.NoError(t, err)
	require.NotNil(t, conv)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "I'm feeling anxious today", conv.Title)
}

func TestSendMessageContinuesConversation(t *testing.T) {
	chat, _ := newTestChatService(llm.NewMockClient())
	ctx := context.Background()

	first, err := chat.SendMessage(ctx, "user-1", "hello")
	require.NoError(t, err)

	second, err := chat.SendMessage(ctx, "user-1", "I could not sleep last night")
	require.NoError(t, err)
	assert.Equal(t, first.ConversationID, second.ConversationID)
	require.Len(t, second.Messages, 4)
}

func TestSendMessageKeepsUserMessageOnGenerationFailure(t *testing.T) {
	mock := llm.NewMockClient()
	chat, conversations := newTestChatService(mock)
	ctx := context.Background()

	mock.Err = errors.New("provider down")
	resp, err := chat.SendMessage(ctx, "user-1", "are you there?")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Error)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, model.RoleUser, resp.Messages[0].Role)

	// The message was persisted before generation was attempted.
	conv, err := conversations.Get(ctx, "user-1", resp.ConversationID)
	require.NoError(t, err)
	require.Len(t, conv.Messages, 1)

	// Recovery continues the same conversation.
	mock.Err = nil
	resp, err = chat.SendMessage(ctx, "user-1", "hello again")
	require.NoError(t, err)
	assert.Empty(t, resp.Error)
	require.Len(t, resp.Messages, 3)
}

func TestSendMessageValidation(t *testing.T) {
	chat, _ := newTestChatService(llm.NewMockClient())
	ctx := context.Background()

	_, err := chat.SendMessage(ctx, "", "hello")
	require.Error(t, err)

	_, err = chat.SendMessage(ctx, "user-1", "  ")
	require.Error(t, err)
}

func TestEndSessionStartsFreshConversation(t *testing.T) {
	chat, _ := newTestChatService(llm.NewMockClient())
	ctx := context.Background()

	first, err := chat.SendMessage(ctx, "user-1", "hello")
	require.NoError(t, err)

	chat.EndSession("user-1")

	second, err := chat.SendMessage(ctx, "user-1", "a new topic")
	require.NoError(t, err)
	assert.NotEqual(t, first.ConversationID, second.ConversationID)
	require.Len(t, second.Messages, 2)
}

func TestLoadConversation(t *testing.T) {
	chat, _ := newTestChatService(llm.NewMockClient())
	ctx := context.Background()

	first, err := chat.SendMessage(ctx, "user-1", "remember this")
	require.NoError(t, err)
	chat.EndSession("user-1")

	loaded, err := chat.LoadConversation(ctx, "user-1", first.ConversationID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, first.ConversationID, loaded.ConversationID)
	require.Len(t, loaded.Messages, 2)

	// Sends now continue the loaded conversation.
	resp, err := chat.SendMessage(ctx, "user-1", "picking up where we left off")
	require.NoError(t, err)
	assert.Equal(t, first.ConversationID, resp.ConversationID)

	missing, err := chat.LoadConversation(ctx, "user-1", "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	chat, _ := newTestChatService(llm.NewMockClient())
	ctx := context.Background()

	a, err := chat.SendMessage(ctx, "user-a", "hello from a")
	require.NoError(t, err)
	b, err := chat.SendMessage(ctx, "user-b", "hello from b")
	require.NoError(t, err)

	assert.NotEqual(t, a.ConversationID, b.ConversationID)
	assert.Equal(t, "hello from a", a.Messages[0].Content)
	assert.Equal(t, "hello from b", b.Messages[0].Content)
}

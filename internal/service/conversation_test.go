package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindful-space/wellness-platform/internal/model"
	"github.com/mindful-space/wellness-platform/internal/store/memory"
	"github.com/mindful-space/wellness-platform/pkg/logger"
)

func newTestConversationService() *ConversationService {
	svc := NewConversationService(memory.NewConversationStore(), nil, logger.NewNop())
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return svc
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"short message", "I feel great today", "I feel great today"},
		{"six word cap", "one two three four five six seven eight", "one two three four five six"},
		{"long words truncated", "supercalifragilisticexpialidocious antidisestablishmentarianism floccinaucinihilipilification", "supercalifragilisticexpialidocious antidisestab..."},
		{"whitespace only", "   ", "New Conversation"},
		{"collapses whitespace", "  hello   there  ", "hello there"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTitle(tt.content))
		})
	}
}

func TestCreateAndGetConversation(t *testing.T) {
	svc := newTestConversationService()
	ctx := context.Background()

	conv, err := svc.Create(ctx, "user-1", "I had a rough day at work")
	require.NoError(t, err)
	require.NotEmpty(t, conv.ID)
	assert.Equal(t, "I had a rough day", conv.Title)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, model.RoleUser, conv.Messages[0].Role)
	assert.Equal(t, "I had a rough day at work", conv.LastMessage)

	got, err := svc.Get(ctx, "user-1", conv.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, conv.ID, got.ID)
	assert.Equal(t, conv.Title, got.Title)
}

func TestGetMissingConversation(t *testing.T) {
	svc := newTestConversationService()

	got, err := svc.Get(context.Background(), "user-1", "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListOrdersByMostRecentlyUpdated(t *testing.T) {
	svc := newTestConversationService()
	ctx := context.Background()

	first, err := svc.Create(ctx, "user-1", "first topic")
	require.NoError(t, err)
	second, err := svc.Create(ctx, "user-1", "second topic")
	require.NoError(t, err)

	items, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)

	// Touching the older conversation moves it to the front.
	_, err = svc.AddMessage(ctx, "user-1", first.ID, model.RoleUser, "more on the first topic")
	require.NoError(t, err)

	items, err = svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, "more on the first topic", items[0].LastMessage)
}

func TestAddMessagePreservesOrder(t *testing.T) {
	svc := newTestConversationService()
	ctx := context.Background()

	conv, err := svc.Create(ctx, "user-1", "hello")
	require.NoError(t, err)

	_, err = svc.AddMessage(ctx, "user-1", conv.ID, model.RoleAssistant, "hi, how are you feeling?")
	require.NoError(t, err)
	_, err = svc.AddMessage(ctx, "user-1", conv.ID, model.RoleUser, "a bit tired")
	require.NoError(t, err)

	got, err := svc.Get(ctx, "user-1", conv.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "hello", got.Messages[0].Content)
	assert.Equal(t, "hi, how are you feeling?", got.Messages[1].Content)
	assert.Equal(t, "a bit tired", got.Messages[2].Content)
	assert.Equal(t, "a bit tired", got.LastMessage)
}

func TestAddMessageMissingConversation(t *testing.T) {
	svc := newTestConversationService()

	_, err := svc.AddMessage(context.Background(), "user-1", "missing", model.RoleUser, "hello")
	require.Error(t, err)
}

func TestUpdateTitle(t *testing.T) {
	svc := newTestConversationService()
	ctx := context.Background()

	conv, err := svc.Create(ctx, "user-1", "hello")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateTitle(ctx, "user-1", conv.ID, "Check-in Monday"))

	got, err := svc.Get(ctx, "user-1", conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Check-in Monday", got.Title)
}

func TestUpdateTitleMovesConversationToFront(t *testing.T) {
	svc := newTestConversationService()
	ctx := context.Background()

	first, err := svc.Create(ctx, "user-1", "older topic")
	require.NoError(t, err)
	second, err := svc.Create(ctx, "user-1", "newer topic")
	require.NoError(t, err)

	// A rename counts as a change, so it moves the conversation up.
	require.NoError(t, svc.UpdateTitle(ctx, "user-1", first.ID, "Renamed"))

	items, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, "Renamed", items[0].Title)
	assert.Equal(t, second.ID, items[1].ID)
	assert.True(t, items[0].UpdatedAt.After(items[1].UpdatedAt))

	got, err := svc.Get(ctx, "user-1", first.ID)
	require.NoError(t, err)
	assert.Equal(t, items[0].UpdatedAt, got.UpdatedAt)
}

func TestDeleteAll(t *testing.T) {
	svc := newTestConversationService()
	ctx := context.Background()

	for _, content := range []string{"one", "two", "three"} {
		_, err := svc.Create(ctx, "user-1", content)
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, "user-2", "untouched")
	require.NoError(t, err)

	deleted, err := svc.DeleteAll(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	items, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, items)

	others, err := svc.List(ctx, "user-2")
	require.NoError(t, err)
	assert.Len(t, others, 1)
}

func TestSubscribeDeliversSnapshots(t *testing.T) {
	svc := newTestConversationService()
	ctx := context.Background()

	conv, err := svc.Create(ctx, "user-1", "hello")
	require.NoError(t, err)

	snapshots := make(chan *model.Conversation, 8)
	unsubscribe, err := svc.Subscribe(ctx, "user-1", conv.ID, func(c *model.Conversation) {
		snapshots <- c
	})
	require.NoError(t, err)
	defer unsubscribe()

	// Current state arrives on attach.
	initial := <-snapshots
	assert.Len(t, initial.Messages, 1)

	_, err = svc.AddMessage(ctx, "user-1", conv.ID, model.RoleAssistant, "hi there")
	require.NoError(t, err)

	updated := <-snapshots
	assert.Len(t, updated.Messages, 2)

	// After unsubscribe no further snapshots arrive.
	unsubscribe()
	_, err = svc.AddMessage(ctx, "user-1", conv.ID, model.RoleUser, "still there?")
	require.NoError(t, err)

	select {
	case <-snapshots:
		t.Fatal("received snapshot after unsubscribe")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestConversationService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "hello")
	require.Error(t, err)

	_, err = svc.Create(ctx, "user-1", "   ")
	require.Error(t, err)
}

package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mindful-space/wellness-platform/internal/model"
	"github.com/mindful-space/wellness-platform/internal/store"
)

type conversationDoc struct {
	UserID      string       `firestore:"user_id"`
	Title       string       `firestore:"title"`
	CreatedAt   time.Time    `firestore:"created_at"`
	UpdatedAt   time.Time    `firestore:"updated_at"`
	Messages    []messageDoc `firestore:"messages"`
	LastMessage string       `firestore:"last_message"`
}

type messageDoc struct {
	ID        string    `firestore:"id"`
	Role      string    `firestore:"role"`
	Content   string    `firestore:"content"`
	Timestamp time.Time `firestore:"timestamp"`
}

func toMessageDoc(msg model.Message) messageDoc {
	return messageDoc{
		ID:        msg.ID,
		Role:      string(msg.Role),
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
	}
}

func (d messageDoc) toModel() model.Message {
	return model.Message{
		ID:        d.ID,
		Role:      model.Role(d.Role),
		Content:   d.Content,
		Timestamp: d.Timestamp,
	}
}

func (s *Store) Create(ctx context.Context, conv *model.Conversation) error {
	doc := conversationDoc{
		UserID:      conv.UserID,
		Title:       conv.Title,
		CreatedAt:   conv.CreatedAt,
		UpdatedAt:   conv.UpdatedAt,
		LastMessage: conv.LastMessage,
		Messages:    make([]messageDoc, 0, len(conv.Messages)),
	}
	for _, msg := range conv.Messages {
		doc.Messages = append(doc.Messages, toMessageDoc(msg))
	}

	if _, err := s.conversationDoc(conv.UserID, conv.ID).Create(ctx, doc); err != nil {
		return fmt.Errorf("firestore Create conversation: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, userID, conversationID string) (*model.Conversation, error) {
	snap, err := s.conversationDoc(userID, conversationID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("firestore Get conversation: %w", err)
	}
	return decodeConversation(userID, snap)
}

func decodeConversation(userID string, snap *firestore.DocumentSnapshot) (*model.Conversation, error) {
	var doc conversationDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode conversationDoc: %w", err)
	}

	conv := &model.Conversation{
		ID:          snap.Ref.ID,
		UserID:      userID,
		Title:       doc.Title,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
		LastMessage: doc.LastMessage,
		Messages:    make([]model.Message, 0, len(doc.Messages)),
	}
	for _, m := range doc.Messages {
		conv.Messages = append(conv.Messages, m.toModel())
	}
	return conv, nil
}

func (s *Store) List(ctx context.Context, userID string) ([]model.ConversationListItem, error) {
	q := s.conversationsCol(userID).OrderBy("updated_at", firestore.Desc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []model.ConversationListItem
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore List conversations: %w", err)
		}

		var doc conversationDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode conversationDoc: %w", err)
		}

		out = append(out, model.ConversationListItem{
			ID:          snap.Ref.ID,
			Title:       doc.Title,
			UpdatedAt:   doc.UpdatedAt,
			LastMessage: doc.LastMessage,
		})
	}
	return out, nil
}

// AppendMessage appends through a single server-side array-union update, so
// concurrent appenders cannot lose each other's messages.
func (s *Store) AppendMessage(ctx context.Context, userID, conversationID string, msg model.Message) error {
	_, err := s.conversationDoc(userID, conversationID).Update(ctx, []firestore.Update{
		{Path: "messages", Value: firestore.ArrayUnion(toMessageDoc(msg))},
		{Path: "updated_at", Value: msg.Timestamp},
		{Path: "last_message", Value: msg.Content},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("conversation %s: %w", conversationID, store.ErrNotFound)
		}
		return fmt.Errorf("firestore AppendMessage: %w", err)
	}
	return nil
}

func (s *Store) UpdateTitle(ctx context.Context, userID, conversationID, title string, updatedAt time.Time) error {
	_, err := s.conversationDoc(userID, conversationID).Update(ctx, []firestore.Update{
		{Path: "title", Value: title},
		{Path: "updated_at", Value: updatedAt},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("conversation %s: %w", conversationID, store.ErrNotFound)
		}
		return fmt.Errorf("firestore UpdateTitle: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, userID, conversationID string) error {
	if _, err := s.conversationDoc(userID, conversationID).Delete(ctx); err != nil {
		return fmt.Errorf("firestore Delete conversation: %w", err)
	}
	return nil
}

// SubscribeToConversation registers a snapshot listener on the conversation
// document. The callback receives the full document on every remote change,
// starting with the current state. Events missed while detached are not
// replayed; reattaching delivers the current state fresh.
func (s *Store) SubscribeToConversation(ctx context.Context, userID, conversationID string, fn func(*model.Conversation)) (store.Unsubscribe, error) {
	ctx, cancel := context.WithCancel(ctx)
	snaps := s.conversationDoc(userID, conversationID).Snapshots(ctx)

	go func() {
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				return
			}
			if !snap.Exists() {
				continue
			}
			conv, err := decodeConversation(userID, snap)
			if err != nil {
				continue
			}
			fn(conv)
		}
	}()

	return store.Unsubscribe(cancel), nil
}

// SubscribeToConversations registers a snapshot listener on the user's
// conversation list, ordered by most recently updated first.
func (s *Store) SubscribeToConversations(ctx context.Context, userID string, fn func([]model.ConversationListItem)) (store.Unsubscribe, error) {
	ctx, cancel := context.WithCancel(ctx)
	q := s.conversationsCol(userID).OrderBy("updated_at", firestore.Desc)
	snaps := q.Snapshots(ctx)

	go func() {
		defer snaps.Stop()
		for {
			qs, err := snaps.Next()
			if err != nil {
				return
			}

			var items []model.ConversationListItem
			docs := qs.Documents
			for {
				snap, err := docs.Next()
				if err != nil {
					break
				}
				var doc conversationDoc
				if err := snap.DataTo(&doc); err != nil {
					continue
				}
				items = append(items, model.ConversationListItem{
					ID:          snap.Ref.ID,
					Title:       doc.Title,
					UpdatedAt:   doc.UpdatedAt,
					LastMessage: doc.LastMessage,
				})
			}
			fn(items)
		}
	}()

	return store.Unsubscribe(cancel), nil
}

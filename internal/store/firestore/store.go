// Package firestore implements the platform stores against Cloud Firestore.
// Documents live in per-user subcollections: users/{uid}/conversations,
// users/{uid}/mental_metrics and users/{uid}/music_preferences, plus the
// shared music_recommendations collection.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
)

// Store holds the Firestore client shared by all store implementations.
type Store struct {
	client *firestore.Client
}

// New creates a Firestore-backed store for the given GCP project.
func New(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) usersCol() *firestore.CollectionRef {
	return s.client.Collection("users")
}

func (s *Store) userDoc(userID string) *firestore.DocumentRef {
	return s.usersCol().Doc(userID)
}

func (s *Store) conversationsCol(userID string) *firestore.CollectionRef {
	return s.userDoc(userID).Collection("conversations")
}

func (s *Store) conversationDoc(userID, conversationID string) *firestore.DocumentRef {
	return s.conversationsCol(userID).Doc(conversationID)
}

func (s *Store) metricsCol(userID string) *firestore.CollectionRef {
	return s.userDoc(userID).Collection("mental_metrics")
}

func (s *Store) preferencesCol(userID string) *firestore.CollectionRef {
	return s.userDoc(userID).Collection("music_preferences")
}

func (s *Store) recommendationsCol() *firestore.CollectionRef {
	return s.client.Collection("music_recommendations")
}

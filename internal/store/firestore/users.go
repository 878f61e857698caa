package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// EnsureUser creates the user's profile document on first sight and
// refreshes last_active on subsequent calls.
func (s *Store) EnsureUser(ctx context.Context, userID, email, displayName string) error {
	now := time.Now()
	ref := s.userDoc(userID)

	_, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			return fmt.Errorf("firestore EnsureUser get: %w", err)
		}
		_, err = ref.Create(ctx, map[string]interface{}{
			"uid":          userID,
			"email":        email,
			"display_name": displayName,
			"created_at":   now,
			"updated_at":   now,
			"last_active":  now,
		})
		if err != nil {
			return fmt.Errorf("firestore EnsureUser create: %w", err)
		}
		return nil
	}

	_, err = ref.Set(ctx, map[string]interface{}{
		"email":        email,
		"display_name": displayName,
		"updated_at":   now,
		"last_active":  now,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("firestore EnsureUser update: %w", err)
	}
	return nil
}

// CountUsers counts user profile documents. Select() keeps the reads cheap;
// only document refs come back.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	iter := s.usersCol().Select().Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return 0, fmt.Errorf("firestore CountUsers: %w", err)
		}
		count++
	}
	return count, nil
}

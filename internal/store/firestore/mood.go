package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/mindful-space/wellness-platform/internal/model"
)

type moodDoc struct {
	MoodScore float64   `firestore:"mood_score"`
	Sentiment string    `firestore:"sentiment"`
	Topics    []string  `firestore:"topics"`
	Timestamp time.Time `firestore:"timestamp"`
}

func (s *Store) SaveMood(ctx context.Context, userID string, entry *model.MoodEntry) error {
	doc := moodDoc{
		MoodScore: entry.MoodScore,
		Sentiment: entry.Sentiment,
		Topics:    entry.Topics,
		Timestamp: entry.Timestamp,
	}

	ref := s.metricsCol(userID).NewDoc()
	if _, err := ref.Create(ctx, doc); err != nil {
		return fmt.Errorf("firestore SaveMood: %w", err)
	}
	entry.ID = ref.ID
	return nil
}

func (s *Store) MoodHistory(ctx context.Context, userID string, limit int) ([]model.MoodEntry, error) {
	q := s.metricsCol(userID).OrderBy("timestamp", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []model.MoodEntry
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore MoodHistory: %w", err)
		}

		var doc moodDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode moodDoc: %w", err)
		}

		out = append(out, model.MoodEntry{
			ID:        snap.Ref.ID,
			MoodScore: doc.MoodScore,
			Sentiment: doc.Sentiment,
			Topics:    doc.Topics,
			Timestamp: doc.Timestamp,
		})
	}
	return out, nil
}

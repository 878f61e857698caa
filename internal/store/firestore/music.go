package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/mindful-space/wellness-platform/internal/model"
)

type recommendationDoc struct {
	Title       string    `firestore:"title"`
	Artist      string    `firestore:"artist"`
	Mood        string    `firestore:"mood"`
	YouTubeID   string    `firestore:"youtube_id"`
	Description string    `firestore:"description"`
	Timestamp   time.Time `firestore:"timestamp"`
}

type preferenceDoc struct {
	Mood      string    `firestore:"mood"`
	YouTubeID string    `firestore:"youtube_id"`
	Timestamp time.Time `firestore:"timestamp"`
}

func (s *Store) Recommendations(ctx context.Context, mood string, limit int) ([]model.MusicRecommendation, error) {
	q := s.recommendationsCol().
		Where("mood", "==", mood).
		OrderBy("timestamp", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []model.MusicRecommendation
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore Recommendations: %w", err)
		}

		var doc recommendationDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode recommendationDoc: %w", err)
		}

		out = append(out, model.MusicRecommendation{
			ID:          snap.Ref.ID,
			Title:       doc.Title,
			Artist:      doc.Artist,
			Mood:        doc.Mood,
			YouTubeID:   doc.YouTubeID,
			Description: doc.Description,
			Timestamp:   doc.Timestamp,
		})
	}
	return out, nil
}

// AddRecommendation writes with an auto-generated document ID; repeated
// seeding runs therefore duplicate entries.
func (s *Store) AddRecommendation(ctx context.Context, rec *model.MusicRecommendation) error {
	doc := recommendationDoc{
		Title:       rec.Title,
		Artist:      rec.Artist,
		Mood:        rec.Mood,
		YouTubeID:   rec.YouTubeID,
		Description: rec.Description,
		Timestamp:   rec.Timestamp,
	}

	ref := s.recommendationsCol().NewDoc()
	if _, err := ref.Create(ctx, doc); err != nil {
		return fmt.Errorf("firestore AddRecommendation: %w", err)
	}
	rec.ID = ref.ID
	return nil
}

func (s *Store) SavePreference(ctx context.Context, userID string, pref *model.MusicPreference) error {
	doc := preferenceDoc{
		Mood:      pref.Mood,
		YouTubeID: pref.YouTubeID,
		Timestamp: pref.Timestamp,
	}

	if _, err := s.preferencesCol(userID).NewDoc().Create(ctx, doc); err != nil {
		return fmt.Errorf("firestore SavePreference: %w", err)
	}
	return nil
}

func (s *Store) Preferences(ctx context.Context, userID string, limit int) ([]model.MusicPreference, error) {
	q := s.preferencesCol(userID).OrderBy("timestamp", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []model.MusicPreference
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore Preferences: %w", err)
		}

		var doc preferenceDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode preferenceDoc: %w", err)
		}

		out = append(out, model.MusicPreference{
			Mood:      doc.Mood,
			YouTubeID: doc.YouTubeID,
			Timestamp: doc.Timestamp,
		})
	}
	return out, nil
}

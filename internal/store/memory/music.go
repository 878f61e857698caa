package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mindful-space/wellness-platform/internal/model"
)

// MusicStore is a mutex-guarded in-memory MusicStore.
type MusicStore struct {
	mu              sync.RWMutex
	recommendations []model.MusicRecommendation
	preferences     map[string][]model.MusicPreference // userID -> preferences
}

// NewMusicStore creates an empty in-memory music store.
func NewMusicStore() *MusicStore {
	return &MusicStore{
		preferences: make(map[string][]model.MusicPreference),
	}
}

func (s *MusicStore) Recommendations(ctx context.Context, mood string, limit int) ([]model.MusicRecommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.MusicRecommendation
	for _, rec := range s.recommendations {
		if rec.Mood == mood {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MusicStore) AddRecommendation(ctx context.Context, rec *model.MusicRecommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recommendations = append(s.recommendations, *rec)
	return nil
}

func (s *MusicStore) SavePreference(ctx context.Context, userID string, pref *model.MusicPreference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.preferences[userID] = append(s.preferences[userID], *pref)
	return nil
}

func (s *MusicStore) Preferences(ctx context.Context, userID string, limit int) ([]model.MusicPreference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefs := make([]model.MusicPreference, len(s.preferences[userID]))
	copy(prefs, s.preferences[userID])

	sort.Slice(prefs, func(i, j int) bool {
		return prefs[i].Timestamp.After(prefs[j].Timestamp)
	})
	if limit > 0 && len(prefs) > limit {
		prefs = prefs[:limit]
	}
	return prefs, nil
}

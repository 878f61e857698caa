package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mindful-space/wellness-platform/internal/model"
)

// MoodStore is a mutex-guarded in-memory MoodStore.
type MoodStore struct {
	mu      sync.RWMutex
	entries map[string][]model.MoodEntry // userID -> entries
}

// NewMoodStore creates an empty in-memory mood store.
func NewMoodStore() *MoodStore {
	return &MoodStore{
		entries: make(map[string][]model.MoodEntry),
	}
}

func (s *MoodStore) SaveMood(ctx context.Context, userID string, entry *model.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Document stores hand back a generated ID; the double does the same.
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	s.entries[userID] = append(s.entries[userID], *entry)
	return nil
}

func (s *MoodStore) MoodHistory(ctx context.Context, userID string, limit int) ([]model.MoodEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]model.MoodEntry, len(s.entries[userID]))
	copy(entries, s.entries[userID])

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

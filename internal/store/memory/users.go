package memory

import (
	"context"
	"sync"
	"time"
)

type userRecord struct {
	Email       string
	DisplayName string
	CreatedAt   time.Time
	LastActive  time.Time
}

// UserStore is a mutex-guarded in-memory UserStore.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*userRecord
}

// NewUserStore creates an empty in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[string]*userRecord),
	}
}

func (s *UserStore) EnsureUser(ctx context.Context, userID, email, displayName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if u, ok := s.users[userID]; ok {
		u.Email = email
		u.DisplayName = displayName
		u.LastActive = now
		return nil
	}
	s.users[userID] = &userRecord{
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   now,
		LastActive:  now,
	}
	return nil
}

func (s *UserStore) CountUsers(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

package service

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"

	"github.com/mindful-space/wellness-platform/internal/middleware"
	"github.com/mindful-space/wellness-platform/internal/store"
	"github.com/mindful-space/wellness-platform/pkg/logger"
)

// UserService manages user profiles and community stats.
type UserService struct {
	store  store.UserStore
	logger *logger.Logger
}

// NewUserService creates a user service.
func NewUserService(st store.UserStore, log *logger.Logger) *UserService {
	return &UserService{store: st, logger: log}
}

// EnsureUser creates the user's profile document if it does not exist yet.
func (s *UserService) EnsureUser(ctx context.Context, userID, email, displayName string) error {
	if err := middleware.ValidateUserID(userID); err != nil {
		return err
	}
	if err := s.store.EnsureUser(ctx, userID, email, displayName); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return nil
}

// Count returns the total registered user count, retrying transient store
// failures with exponential backoff (three attempts).
func (s *UserService) Count(ctx context.Context) (int, error) {
	var count int
	op := func() error {
		var err error
		count, err = s.store.CountUsers(ctx)
		return err
	}

	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2)
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mindful-space/wellness-platform/internal/middleware"
	"github.com/mindful-space/wellness-platform/internal/model"
	"github.com/mindful-space/wellness-platform/internal/store"
	"github.com/mindful-space/wellness-platform/internal/youtube"
	"github.com/mindful-space/wellness-platform/pkg/logger"
)

const defaultRecommendationLimit = 10

// MusicService serves curated recommendations, video search, and per-user
// listening preferences.
type MusicService struct {
	store  store.MusicStore
	search *youtube.Client
	logger *logger.Logger

	now func() time.Time
}

// NewMusicService creates a music service.
func NewMusicService(st store.MusicStore, search *youtube.Client, log *logger.Logger) *MusicService {
	return &MusicService{
		store:  st,
		search: search,
		logger: log,
		now:    time.Now,
	}
}

// Recommendations returns curated tracks for a mood, newest first.
func (s *MusicService) Recommendations(ctx context.Context, mood string, limit int) ([]model.MusicRecommendation, error) {
	if mood == "" {
		return nil, fmt.Errorf("mood is required")
	}
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}
	recs, err := s.store.Recommendations(ctx, mood, limit)
	if err != nil {
		return nil, fmt.Errorf("recommendations: %w", err)
	}
	return recs, nil
}

// Search looks up music videos. It never fails; on any trouble the caller
// gets the fixed fallback list.
func (s *MusicService) Search(ctx context.Context, query string) []model.Video {
	if query == "" {
		return youtube.FallbackVideos()
	}
	return s.search.Search(ctx, query)
}

// SavePreference records that the user played or saved a track.
func (s *MusicService) SavePreference(ctx context.Context, userID string, req *model.SavePreferenceRequest) error {
	if err := middleware.ValidateUserID(userID); err != nil {
		return err
	}
	if req.Mood == "" || req.YouTubeID == "" {
		return fmt.Errorf("mood and youtube_id are required")
	}

	pref := &model.MusicPreference{
		Mood:      req.Mood,
		YouTubeID: req.YouTubeID,
		Timestamp: s.now().UTC(),
	}
	if err := s.store.SavePreference(ctx, userID, pref); err != nil {
		return fmt.Errorf("save preference: %w", err)
	}
	return nil
}

// Preferences returns the user's recorded preferences, newest first.
func (s *MusicService) Preferences(ctx context.Context, userID string, limit int) ([]model.MusicPreference, error) {
	if err := middleware.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}
	prefs, err := s.store.Preferences(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	return prefs, nil
}

// DefaultRecommendations is the starter catalog written by the seeding
// command.
func DefaultRecommendations() []model.MusicRecommendation {
	return []model.MusicRecommendation{
		{
			Title:       "Weightless",
			Artist:      "Marconi Union",
			Mood:        "Anxious",
			YouTubeID:   "UfcAVejslrU",
			Description: "Ambient track composed to slow heart rate and reduce anxiety.",
		},
		{
			Title:       "Clair de Lune",
			Artist:      "Claude Debussy",
			Mood:        "Calm",
			YouTubeID:   "CvFH_6DNRCY",
			Description: "Gentle impressionist piano for quiet, reflective moments.",
		},
		{
			Title:       "Happy",
			Artist:      "Pharrell Williams",
			Mood:        "Happy",
			YouTubeID:   "ZbZSe6N_BXs",
			Description: "An upbeat anthem to keep a good mood going.",
		},
		{
			Title:       "Someone Like You",
			Artist:      "Adele",
			Mood:        "Sad",
			YouTubeID:   "hLQl3WQQoQ0",
			Description: "A song that sits with sadness instead of rushing past it.",
		},
		{
			Title:       "Breathe Me",
			Artist:      "Sia",
			Mood:        "Neutral",
			YouTubeID:   "ghPcYqn0p4Y",
			Description: "Soft and introspective, good for settling into the moment.",
		},
	}
}

// SeedDefaults writes the starter catalog. Each run writes fresh documents,
// so repeated runs duplicate entries.
func (s *MusicService) SeedDefaults(ctx context.Context) (int, error) {
	seeded := 0
	for _, rec := range DefaultRecommendations() {
		rec.Timestamp = s.now().UTC()
		if err := s.store.AddRecommendation(ctx, &rec); err != nil {
			return seeded, fmt.Errorf("seed %q: %w", rec.Title, err)
		}
		seeded++
	}
	return seeded, nil
}

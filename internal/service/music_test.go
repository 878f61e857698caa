package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindful-space/wellness-platform/internal/model"
	"github.com/mindful-space/wellness-platform/internal/store/memory"
	"github.com/mindful-space/wellness-platform/pkg/logger"
)

func newTestMusicService() *MusicService {
	svc := NewMusicService(memory.NewMusicStore(), nil, logger.NewNop())
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return svc
}

func TestSeedDefaultsAndRecommendations(t *testing.T) {
	svc := newTestMusicService()
	ctx := context.Background()

	seeded, err := svc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, seeded)

	recs, err := svc.Recommendations(ctx, "Anxious", 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Weightless", recs[0].Title)
	assert.Equal(t, "Marconi Union", recs[0].Artist)

	// Seeding again duplicates the catalog.
	_, err = svc.SeedDefaults(ctx)
	require.NoError(t, err)
	recs, err = svc.Recommendations(ctx, "Anxious", 0)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestRecommendationsRequireMood(t *testing.T) {
	svc := newTestMusicService()

	_, err := svc.Recommendations(context.Background(), "", 0)
	require.Error(t, err)
}

func TestSaveAndListPreferences(t *testing.T) {
	svc := newTestMusicService()
	ctx := context.Background()

	require.NoError(t, svc.SavePreference(ctx, "user-1", &model.SavePreferenceRequest{
		Mood:      "Calm",
		YouTubeID: "CvFH_6DNRCY",
	}))
	require.NoError(t, svc.SavePreference(ctx, "user-1", &model.SavePreferenceRequest{
		Mood:      "Happy",
		YouTubeID: "ZbZSe6N_BXs",
	}))

	prefs, err := svc.Preferences(ctx, "user-1", 0)
	require.NoError(t, err)
	require.Len(t, prefs, 2)
	// Newest first.
	assert.Equal(t, "Happy", prefs[0].Mood)
	assert.Equal(t, "Calm", prefs[1].Mood)

	err = svc.SavePreference(ctx, "user-1", &model.SavePreferenceRequest{Mood: "Calm"})
	require.Error(t, err)
}

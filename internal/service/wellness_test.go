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

func newTestWellnessService() *WellnessService {
	svc := NewWellnessService(memory.NewMoodStore(), nil, logger.NewNop())
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return svc
}

func TestSaveMoodAndHistory(t *testing.T) {
	svc := newTestWellnessService()
	ctx := context.Background()

	entry, err := svc.SaveMood(ctx, "user-1", &model.SaveMoodRequest{
		MoodScore: 7.5,
		Sentiment: "  hopeful ",
		Topics:    []string{"work"},
	})
	require.NoError(t, err)
	assert.Equal(t, 7.5, entry.MoodScore)
	assert.Equal(t, "hopeful", entry.Sentiment)
	assert.NotEmpty(t, entry.ID)

	_, err = svc.SaveMood(ctx, "user-1", &model.SaveMoodRequest{
		MoodScore: 4,
		Sentiment: "tired",
	})
	require.NoError(t, err)

	entries, err := svc.History(ctx, "user-1", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Newest first.
	assert.Equal(t, "tired", entries[0].Sentiment)
	assert.Equal(t, "hopeful", entries[1].Sentiment)
}

func TestSaveMoodValidation(t *testing.T) {
	svc := newTestWellnessService()
	ctx := context.Background()

	_, err := svc.SaveMood(ctx, "user-1", &model.SaveMoodRequest{MoodScore: 11, Sentiment: "ok"})
	require.Error(t, err)

	_, err = svc.SaveMood(ctx, "user-1", &model.SaveMoodRequest{MoodScore: -1, Sentiment: "ok"})
	require.Error(t, err)

	_, err = svc.SaveMood(ctx, "user-1", &model.SaveMoodRequest{MoodScore: 5, Sentiment: "  "})
	require.Error(t, err)

	_, err = svc.SaveMood(ctx, "", &model.SaveMoodRequest{MoodScore: 5, Sentiment: "ok"})
	require.Error(t, err)
}

func TestComputeScoreTopicShares(t *testing.T) {
	// Three of seven entries tagged with anxiety: 3/7 rounds to 43.
	entries := make([]model.MoodEntry, 0, 7)
	for i := 0; i < 3; i++ {
		entries = append(entries, model.MoodEntry{MoodScore: 5, Topics: []string{"anxiety"}})
	}
	for i := 0; i < 4; i++ {
		entries = append(entries, model.MoodEntry{MoodScore: 5})
	}

	score := ComputeScore(entries)
	assert.Equal(t, 43, score.Anxiety)
	assert.Equal(t, 0, score.Sleep)
	assert.Equal(t, 0, score.Energy)
	assert.Equal(t, 50, score.Mood)
	assert.Equal(t, 50, score.Overall)
}

func TestComputeScoreAveragesMood(t *testing.T) {
	entries := []model.MoodEntry{
		{MoodScore: 8, Topics: []string{"energy"}},
		{MoodScore: 6, Topics: []string{"Sleep"}},
		{MoodScore: 7},
	}

	score := ComputeScore(entries)
	assert.Equal(t, 70, score.Mood)
	assert.Equal(t, 70, score.Overall)
	// Topic matching is case-insensitive.
	assert.Equal(t, 33, score.Sleep)
	assert.Equal(t, 33, score.Energy)
	assert.Equal(t, 0, score.Anxiety)
}

func TestComputeScoreEmptyHistory(t *testing.T) {
	score := ComputeScore(nil)
	assert.Equal(t, &model.WellnessScore{}, score)
}

func TestScoreUsesLastSevenEntries(t *testing.T) {
	svc := newTestWellnessService()
	ctx := context.Background()

	// Ten entries; only the newest seven count. The three oldest score 0,
	// the rest score 10, so the average over the window is exactly 10.
	for i := 0; i < 3; i++ {
		_, err := svc.SaveMood(ctx, "user-1", &model.SaveMoodRequest{MoodScore: 0, Sentiment: "low"})
		require.NoError(t, err)
	}
	for i := 0; i < 7; i++ {
		_, err := svc.SaveMood(ctx, "user-1", &model.SaveMoodRequest{MoodScore: 10, Sentiment: "great"})
		require.NoError(t, err)
	}

	score, err := svc.Score(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 100, score.Mood)
}

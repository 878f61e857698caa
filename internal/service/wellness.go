package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mindful-space/wellness-platform/internal/middleware"
	"github.com/mindful-space/wellness-platform/internal/model"
	"github.com/mindful-space/wellness-platform/internal/store"
	"github.com/mindful-space/wellness-platform/pkg/logger"
	"github.com/mindful-space/wellness-platform/pkg/metrics"
)

const (
	// scoreWindow is how many recent entries feed the wellness aggregate.
	scoreWindow = 7

	defaultHistoryLimit = 30
)

// WellnessService records mood entries and derives wellness aggregates.
type WellnessService struct {
	store  store.MoodStore
	events EventPublisher
	logger *logger.Logger

	now func() time.Time
}

// NewWellnessService creates a wellness service. events may be nil.
func NewWellnessService(st store.MoodStore, events EventPublisher, log *logger.Logger) *WellnessService {
	return &WellnessService{
		store:  st,
		events: events,
		logger: log,
		now:    time.Now,
	}
}

// SaveMood records one mood entry.
func (s *WellnessService) SaveMood(ctx context.Context, userID string, req *model.SaveMoodRequest) (*model.MoodEntry, error) {
	if err := middleware.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := middleware.ValidateMoodScore(req.MoodScore); err != nil {
		return nil, err
	}
	if err := middleware.ValidateSentiment(req.Sentiment); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	entry := &model.MoodEntry{
		MoodScore: req.MoodScore,
		Sentiment: strings.TrimSpace(req.Sentiment),
		Topics:    req.Topics,
		Timestamp: now,
	}

	if err := s.store.SaveMood(ctx, userID, entry); err != nil {
		return nil, fmt.Errorf("save mood: %w", err)
	}

	metrics.MoodEntriesTotal.Inc()
	s.publish(ctx, newEvent(userID, "", model.EventTypeMoodRecorded, now))

	return entry, nil
}

// History returns the user's most recent mood entries, newest first.
func (s *WellnessService) History(ctx context.Context, userID string, limit int) ([]model.MoodEntry, error) {
	if err := middleware.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	entries, err := s.store.MoodHistory(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("mood history: %w", err)
	}
	return entries, nil
}

// Score computes the wellness aggregate over the user's last seven entries.
// With no history every dimension is zero.
func (s *WellnessService) Score(ctx context.Context, userID string) (*model.WellnessScore, error) {
	if err := middleware.ValidateUserID(userID); err != nil {
		return nil, err
	}

	entries, err := s.store.MoodHistory(ctx, userID, scoreWindow)
	if err != nil {
		return nil, fmt.Errorf("mood history: %w", err)
	}
	return ComputeScore(entries), nil
}

// ComputeScore derives the aggregate from a set of mood entries. Mood is the
// average score scaled to 0..100. Anxiety, sleep, and energy are the share of
// entries tagged with the matching topic. The divisor never drops below one,
// so an empty history yields all zeros rather than a division by zero.
func ComputeScore(entries []model.MoodEntry) *model.WellnessScore {
	count := len(entries)
	divisor := count
	if divisor < 1 {
		divisor = 1
	}

	var moodSum float64
	var anxiety, sleep, energy int
	for _, entry := range entries {
		moodSum += entry.MoodScore
		if hasTopic(entry.Topics, "anxiety") {
			anxiety++
		}
		if hasTopic(entry.Topics, "sleep") {
			sleep++
		}
		if hasTopic(entry.Topics, "energy") {
			energy++
		}
	}

	mood := int(math.Round(moodSum / float64(divisor) * 10))
	return &model.WellnessScore{
		Overall: mood,
		Mood:    mood,
		Anxiety: percent(anxiety, divisor),
		Sleep:   percent(sleep, divisor),
		Energy:  percent(energy, divisor),
	}
}

func percent(n, of int) int {
	return int(math.Round(float64(n) / float64(of) * 100))
}

func hasTopic(topics []string, topic string) bool {
	for _, t := range topics {
		if strings.EqualFold(t, topic) {
			return true
		}
	}
	return false
}

func (s *WellnessService) publish(ctx context.Context, event *model.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("type", string(event.Type)),
			zap.Error(err))
	}
}

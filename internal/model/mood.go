package model

import (
	"time"
)

// MoodEntry is one recorded mood measurement.
type MoodEntry struct {
	ID        string    `json:"id" firestore:"-"`
	MoodScore float64   `json:"mood_score" firestore:"mood_score"`
	Sentiment string    `json:"sentiment" firestore:"sentiment"`
	Topics    []string  `json:"topics" firestore:"topics"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
}

// WellnessScore is the aggregate derived from recent mood entries.
// All values are on a 0 to 100 scale.
type WellnessScore struct {
	Overall int `json:"overall"`
	Mood    int `json:"mood"`
	Anxiety int `json:"anxiety"`
	Sleep   int `json:"sleep"`
	Energy  int `json:"energy"`
}

// SaveMoodRequest is the request to record a mood entry.
type SaveMoodRequest struct {
	MoodScore float64  `json:"mood_score"`
	Sentiment string   `json:"sentiment"`
	Topics    []string `json:"topics"`
}

// MoodHistoryResponse is the response for mood history queries.
type MoodHistoryResponse struct {
	Entries []MoodEntry `json:"entries"`
	Total   int         `json:"total"`
}

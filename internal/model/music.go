package model

import (
	"time"
)

// MusicRecommendation is a curated track suggestion for a mood.
type MusicRecommendation struct {
	ID          string    `json:"id" firestore:"-"`
	Title       string    `json:"title" firestore:"title"`
	Artist      string    `json:"artist" firestore:"artist"`
	Mood        string    `json:"mood" firestore:"mood"`
	YouTubeID   string    `json:"youtube_id" firestore:"youtube_id"`
	Description string    `json:"description" firestore:"description"`
	Timestamp   time.Time `json:"timestamp" firestore:"timestamp"`
}

// MusicPreference records that a user played or saved a track for a mood.
type MusicPreference struct {
	Mood      string    `json:"mood" firestore:"mood"`
	YouTubeID string    `json:"youtube_id" firestore:"youtube_id"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
}

// SavePreferenceRequest is the request to record a music preference.
type SavePreferenceRequest struct {
	Mood      string `json:"mood"`
	YouTubeID string `json:"youtube_id"`
}

// Video is a search result from the video platform.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
	ChannelTitle string `json:"channel_title"`
	Duration     string `json:"duration"`
	URL          string `json:"url"`
}

// Package youtube provides the video search client for music therapy.
// Searches that fail or come back empty fall back to a fixed list of five
// pre-selected items so the page always has something to play.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/mindful-space/wellness-platform/internal/model"
	"github.com/mindful-space/wellness-platform/pkg/logger"
	"github.com/mindful-space/wellness-platform/pkg/metrics"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// moodQueries maps mood keywords to search queries for better results.
var moodQueries = map[string][]string{
	"Happy": {
		"uplifting music",
		"happy songs",
		"positive vibes music",
		"feel good music",
		"energetic music",
	},
	"Sad": {
		"calming music",
		"emotional healing music",
		"peaceful music",
		"relaxing music",
		"soothing music",
	},
	"Anxious": {
		"anxiety relief music",
		"calming meditation music",
		"stress relief music",
		"peaceful ambient music",
		"relaxing nature sounds",
	},
	"Angry": {
		"calming music",
		"peaceful music",
		"relaxing music",
		"meditation music",
		"stress relief music",
	},
	"Neutral": {
		"background music",
		"ambient music",
		"chill music",
		"lo-fi music",
		"relaxing music",
	},
}

// fallbackVideos is the fixed list served when the API is unavailable.
var fallbackVideos = []model.Video{
	{
		ID:           "jfKfPfyJRdk",
		Title:        "lofi hip hop radio - beats to relax/study to",
		ThumbnailURL: "https://i.ytimg.com/vi/jfKfPfyJRdk/hqdefault.jpg",
		ChannelTitle: "Lofi Girl",
		Duration:     "0:00",
		URL:          "https://www.youtube.com/watch?v=jfKfPfyJRdk",
	},
	{
		ID:           "rUxyA5a0Irk",
		Title:        "Peaceful Piano Radio - 24/7 Live Piano Music",
		ThumbnailURL: "https://i.ytimg.com/vi/rUxyA5a0Irk/hqdefault.jpg",
		ChannelTitle: "Peaceful Piano",
		Duration:     "0:00",
		URL:          "https://www.youtube.com/watch?v=rUxyA5a0Irk",
	},
	{
		ID:           "DWcJFNfaw9c",
		Title:        "Relaxing Music for Stress Relief - Soothing Nature Sounds",
		ThumbnailURL: "https://i.ytimg.com/vi/DWcJFNfaw9c/hqdefault.jpg",
		ChannelTitle: "Relaxing Music",
		Duration:     "0:00",
		URL:          "https://www.youtube.com/watch?v=DWcJFNfaw9c",
	},
	{
		ID:           "1ZYbU82GVz4",
		Title:        "Meditation Music - Deep Relaxation",
		ThumbnailURL: "https://i.ytimg.com/vi/1ZYbU82GVz4/hqdefault.jpg",
		ChannelTitle: "Meditation Music",
		Duration:     "0:00",
		URL:          "https://www.youtube.com/watch?v=1ZYbU82GVz4",
	},
	{
		ID:           "n61ULEU7CO0",
		Title:        "Calming Music for Anxiety Relief",
		ThumbnailURL: "https://i.ytimg.com/vi/n61ULEU7CO0/hqdefault.jpg",
		ChannelTitle: "Calm Music",
		Duration:     "0:00",
		URL:          "https://www.youtube.com/watch?v=n61ULEU7CO0",
	},
}

// FallbackVideos returns a copy of the fixed fallback list.
func FallbackVideos() []model.Video {
	out := make([]model.Video, len(fallbackVideos))
	copy(out, fallbackVideos)
	return out
}

// Config holds video search client configuration.
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client is the video search client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// New creates a video search client.
func New(cfg Config, log *logger.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     log,
	}
}

// Search looks up music videos for a free-text or mood-keyword query.
// It never fails: a missing API key, exhausted retries, or an empty result
// all yield the fixed fallback list.
func (c *Client) Search(ctx context.Context, query string) []model.Video {
	if c.apiKey == "" {
		c.logger.Warn("video search API key not configured, serving fallback list")
		metrics.VideoSearchTotal.WithLabelValues("fallback").Inc()
		return FallbackVideos()
	}

	queries, ok := moodQueries[query]
	if !ok {
		queries = []string{query}
	}

	var videos []model.Video
	for _, q := range queries {
		batch, err := c.searchOne(ctx, q)
		if err != nil {
			c.logger.Warn("video search query failed", zap.String("query", q), zap.Error(err))
			continue
		}
		videos = append(videos, batch...)
	}

	videos = dedupe(videos)
	if len(videos) == 0 {
		metrics.VideoSearchTotal.WithLabelValues("fallback").Inc()
		return FallbackVideos()
	}

	metrics.VideoSearchTotal.WithLabelValues("success").Inc()
	return videos
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

func (c *Client) searchOne(ctx context.Context, query string) ([]model.Video, error) {
	searchURL := c.baseURL + "/search?" + url.Values{
		"part":            {"snippet"},
		"q":               {query},
		"type":            {"video"},
		"videoCategoryId": {"10"},
		"maxResults":      {"5"},
		"key":             {c.apiKey},
	}.Encode()

	var search searchResponse
	if err := c.getJSON(ctx, searchURL, &search); err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	if len(search.Items) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(search.Items))
	for _, item := range search.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}

	detailsURL := c.baseURL + "/videos?" + url.Values{
		"part": {"contentDetails"},
		"id":   {strings.Join(ids, ",")},
		"key":  {c.apiKey},
	}.Encode()

	var details videosResponse
	if err := c.getJSON(ctx, detailsURL, &details); err != nil {
		return nil, fmt.Errorf("details request: %w", err)
	}

	durations := make(map[string]string, len(details.Items))
	for _, item := range details.Items {
		durations[item.ID] = item.ContentDetails.Duration
	}

	out := make([]model.Video, 0, len(search.Items))
	for _, item := range search.Items {
		id := item.ID.VideoID
		if id == "" {
			continue
		}
		out = append(out, model.Video{
			ID:           id,
			Title:        item.Snippet.Title,
			ThumbnailURL: item.Snippet.Thumbnails.High.URL,
			ChannelTitle: item.Snippet.ChannelTitle,
			Duration:     formatDuration(durations[id]),
			URL:          "https://www.youtube.com/watch?v=" + id,
		})
	}
	return out, nil
}

// getJSON fetches with bounded exponential-backoff retry: 3 attempts total,
// retrying transport errors and 5xx responses only.
func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("server error: %s", resp.Status)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("unexpected status: %s", resp.Status))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decoding response: %w", err))
		}
		return nil
	}

	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2)
	return backoff.Retry(op, backoff.WithContext(bo, ctx))
}

func dedupe(videos []model.Video) []model.Video {
	seen := make(map[string]struct{}, len(videos))
	out := videos[:0]
	for _, v := range videos {
		if _, ok := seen[v.ID]; ok {
			continue
		}
		seen[v.ID] = struct{}{}
		out = append(out, v)
	}
	return out
}

var durationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// formatDuration converts an ISO 8601 duration to H:MM:SS or M:SS.
func formatDuration(iso string) string {
	m := durationRe.FindStringSubmatch(iso)
	if m == nil {
		return "0:00"
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindful-space/wellness-platform/pkg/logger"
)

func TestSearchWithoutAPIKeyServesFallback(t *testing.T) {
	client := New(Config{}, logger.NewNop())

	videos := client.Search(context.Background(), "calming music")
	require.Len(t, videos, 5)
	for _, v := range videos {
		assert.Equal(t, "0:00", v.Duration)
		assert.NotEmpty(t, v.URL)
	}
}

func TestSearchServerErrorServesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(Config{APIKey: "test-key", BaseURL: srv.URL}, logger.NewNop())

	videos := client.Search(context.Background(), "some query")
	require.Len(t, videos, 5)
	assert.Equal(t, FallbackVideos(), videos)
}

func TestSearchEmptyResultsServesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[]}`)
	}))
	defer srv.Close()

	client := New(Config{APIKey: "test-key", BaseURL: srv.URL}, logger.NewNop())

	videos := client.Search(context.Background(), "some query")
	assert.Equal(t, FallbackVideos(), videos)
}

func TestSearchParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			fmt.Fprint(w, `{"items":[{
				"id":{"videoId":"abc123"},
				"snippet":{
					"title":"Calm Piano",
					"channelTitle":"Calm Channel",
					"thumbnails":{"high":{"url":"https://example.com/t.jpg"}}
				}
			}]}`)
		case "/videos":
			assert.Equal(t, "abc123", r.URL.Query().Get("id"))
			fmt.Fprint(w, `{"items":[{"id":"abc123","contentDetails":{"duration":"PT4M33S"}}]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := New(Config{APIKey: "test-key", BaseURL: srv.URL}, logger.NewNop())

	videos := client.Search(context.Background(), "calm piano")
	require.Len(t, videos, 1)
	assert.Equal(t, "abc123", videos[0].ID)
	assert.Equal(t, "Calm Piano", videos[0].Title)
	assert.Equal(t, "Calm Channel", videos[0].ChannelTitle)
	assert.Equal(t, "4:33", videos[0].Duration)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", videos[0].URL)
}

func TestSearchMoodKeywordFansOutAndDedupes(t *testing.T) {
	searchCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			searchCalls++
			fmt.Fprint(w, `{"items":[{
				"id":{"videoId":"same-id"},
				"snippet":{"title":"T","channelTitle":"C","thumbnails":{"high":{"url":"u"}}}
			}]}`)
		case "/videos":
			fmt.Fprint(w, `{"items":[{"id":"same-id","contentDetails":{"duration":"PT1M"}}]}`)
		}
	}))
	defer srv.Close()

	client := New(Config{APIKey: "test-key", BaseURL: srv.URL}, logger.NewNop())

	videos := client.Search(context.Background(), "Anxious")
	assert.Equal(t, 5, searchCalls)
	require.Len(t, videos, 1)
	assert.Equal(t, "1:00", videos[0].Duration)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		iso  string
		want string
	}{
		{"PT4M33S", "4:33"},
		{"PT1H2M3S", "1:02:03"},
		{"PT45S", "0:45"},
		{"PT2H", "2:00:00"},
		{"PT10M", "10:00"},
		{"", "0:00"},
		{"garbage", "0:00"},
	}
	for _, tt := range tests {
		t.Run(tt.iso, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDuration(tt.iso))
		})
	}
}

package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mindful-space/wellness-platform/internal/model"
	"github.com/mindful-space/wellness-platform/internal/service"
	"github.com/mindful-space/wellness-platform/internal/store/memory"
	"github.com/mindful-space/wellness-platform/pkg/logger"
)

func wellnessRouter() *chi.Mux {
	log := logger.NewNop()
	svc := service.NewWellnessService(memory.NewMoodStore(), nil, log)
	h := NewWellnessHandler(svc, log)

	r := chi.NewRouter()
	r.Post("/mood", h.SaveMood)
	r.Get("/mood/history", h.History)
	r.Get("/mood/current", h.Current)
	r.Get("/wellness/score", h.Score)
	return r
}

func TestSaveMoodEndpoint(t *testing.T) {
	r := wellnessRouter()

	rec := doRequest(r, http.MethodPost, "/mood", "user-1",
		`{"mood_score":7,"sentiment":"hopeful","topics":["work"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(r, http.MethodPost, "/mood", "user-1",
		`{"mood_score":42,"sentiment":"hopeful"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for out-of-range score, got %d", rec.Code)
	}

	rec = doRequest(r, http.MethodPost, "/mood", "user-1",
		`{"mood_score":5,"sentiment":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing sentiment, got %d", rec.Code)
	}
}

func TestMoodCurrentEndpoint(t *testing.T) {
	r := wellnessRouter()

	rec := doRequest(r, http.MethodGet, "/mood/current", "user-1", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 with no history, got %d", rec.Code)
	}

	doRequest(r, http.MethodPost, "/mood", "user-1", `{"mood_score":3,"sentiment":"low"}`)
	doRequest(r, http.MethodPost, "/mood", "user-1", `{"mood_score":8,"sentiment":"better"}`)

	rec = doRequest(r, http.MethodGet, "/mood/current", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var entry model.MoodEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	if entry.Sentiment != "better" {
		t.Errorf("expected most recent entry, got %q", entry.Sentiment)
	}
}

func TestWellnessScoreEndpoint(t *testing.T) {
	r := wellnessRouter()

	doRequest(r, http.MethodPost, "/mood", "user-1", `{"mood_score":6,"sentiment":"ok","topics":["anxiety"]}`)
	doRequest(r, http.MethodPost, "/mood", "user-1", `{"mood_score":8,"sentiment":"good"}`)

	rec := doRequest(r, http.MethodGet, "/wellness/score", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var score model.WellnessScore
	if err := json.Unmarshal(rec.Body.Bytes(), &score); err != nil {
		t.Fatal(err)
	}
	if score.Mood != 70 {
		t.Errorf("expected mood 70, got %d", score.Mood)
	}
	if score.Anxiety != 50 {
		t.Errorf("expected anxiety 50, got %d", score.Anxiety)
	}
}

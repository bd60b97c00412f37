package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytehacks/bumblebee_service/internal/logger"
	"github.com/bytehacks/bumblebee_service/internal/repository"
	"github.com/bytehacks/bumblebee_service/internal/service"
)

func newTestScoresHandler(repo *stubScoreRepo) *ScoresHandler {
	log := logger.NewNop()
	return NewScoresHandler(log, service.NewScoreService(repo, log))
}

func TestScoresList(t *testing.T) {
	handler := newTestScoresHandler(&stubScoreRepo{records: []repository.DailyScore{
		{Date: "2026-08-22", Incorrect: 2, Total: 9},
		{Date: "2026-08-23", Incorrect: 1, Total: 4},
	}})

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/scores", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got ScoresResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(got.Scores) != 2 {
		t.Fatalf("scores = %d records, want 2", len(got.Scores))
	}
	if got.Scores[0].Date != "2026-08-22" || got.Scores[1].Date != "2026-08-23" {
		t.Errorf("dates = %s, %s; want ascending order preserved", got.Scores[0].Date, got.Scores[1].Date)
	}
	if got.Scores[0].Incorrect != 2 || got.Scores[0].Total != 9 {
		t.Errorf("first record = %+v", got.Scores[0])
	}
}

func TestScoresListEmptyIsJSONArray(t *testing.T) {
	handler := newTestScoresHandler(&stubScoreRepo{})

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/scores", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, `"scores":[]`) {
		t.Errorf("body = %s, want empty scores array, not null", body)
	}
}

func TestScoresListIdempotent(t *testing.T) {
	handler := newTestScoresHandler(&stubScoreRepo{records: []repository.DailyScore{
		{Date: "2026-08-22", Incorrect: 2, Total: 9},
	}})

	first := httptest.NewRecorder()
	handler.List(first, httptest.NewRequest(http.MethodGet, "/scores", nil))
	second := httptest.NewRecorder()
	handler.List(second, httptest.NewRequest(http.MethodGet, "/scores", nil))

	if first.Body.String() != second.Body.String() {
		t.Errorf("bodies differ:\n%s\n%s", first.Body.String(), second.Body.String())
	}
}

func TestScoresListStoreFailure(t *testing.T) {
	handler := newTestScoresHandler(&stubScoreRepo{listErr: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/scores", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "failed to list daily scores" {
		t.Errorf("error = %q", msg)
	}
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytehacks/bumblebee_service/internal/logger"
	"github.com/bytehacks/bumblebee_service/internal/repository"
	"github.com/bytehacks/bumblebee_service/internal/service"
)

func newTestProfileHandler(repo *stubProfileRepo) *ProfileHandler {
	log := logger.NewNop()
	return NewProfileHandler(log, service.NewProfileService(repo, &stubExtractor{}, log))
}

func TestProfileGet(t *testing.T) {
	updated := time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC)
	handler := newTestProfileHandler(&stubProfileRepo{profile: repository.ChildProfile{
		Info:        "Has a dog named Rex.",
		LastUpdated: &updated,
	}})

	rec := httptest.NewRecorder()
	handler.Get(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got repository.ChildProfile
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.Info != "Has a dog named Rex." {
		t.Errorf("info = %q", got.Info)
	}
	if got.LastUpdated == nil || !got.LastUpdated.Equal(updated) {
		t.Errorf("last_updated = %v, want %v", got.LastUpdated, updated)
	}
}

func TestProfileGetDefaultWhenEmpty(t *testing.T) {
	handler := newTestProfileHandler(&stubProfileRepo{})

	rec := httptest.NewRecorder()
	handler.Get(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"info":""`) || !strings.Contains(body, `"last_updated":null`) {
		t.Errorf("body = %s, want empty info and null last_updated", body)
	}
}

func TestProfileGetIdempotent(t *testing.T) {
	updated := time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC)
	handler := newTestProfileHandler(&stubProfileRepo{profile: repository.ChildProfile{
		Info:        "Has a dog named Rex.",
		LastUpdated: &updated,
	}})

	first := httptest.NewRecorder()
	handler.Get(first, httptest.NewRequest(http.MethodGet, "/profile", nil))
	second := httptest.NewRecorder()
	handler.Get(second, httptest.NewRequest(http.MethodGet, "/profile", nil))

	if first.Body.String() != second.Body.String() {
		t.Errorf("bodies differ:\n%s\n%s", first.Body.String(), second.Body.String())
	}
}

func TestProfileGetStoreFailure(t *testing.T) {
	handler := newTestProfileHandler(&stubProfileRepo{getErr: errors.New("redis down")})

	rec := httptest.NewRecorder()
	handler.Get(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "failed to read child profile" {
		t.Errorf("error = %q", msg)
	}
}

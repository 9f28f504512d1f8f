// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Sonu99kr/Assignment/cliparse"
	"github.com/Sonu99kr/Assignment/models"
	"github.com/Sonu99kr/Assignment/poll"
	"github.com/Sonu99kr/Assignment/store/sqlite"
	"github.com/Sonu99kr/Assignment/store/sqlstore"
)

// Epoch is the fixed start time used by FixedClock in tests.
var Epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// SetupTestStore opens a fresh in-memory SQLite store with the full schema
func SetupTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()

	store, err := sqlite.Open(context.Background(), sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseType:     cliparse.DatabaseSQLite,
		DatabaseURL:      sqlite.MemoryPath,
		AllowedOrigin:    "*",
		LogFormat:        "text",
		IPHashSalt:       "test-ip-salt",
		VoteRateLimit:    1000,
		VoteRateBurst:    1000,
		VoteRetryTries:   3,
		EventBuffer:      64,
		SubscriberBuffer: 16,
		PollRetention:    24 * time.Hour,
		JanitorInterval:  time.Minute,
	}
}

// FixedClock is a poll.Clock that only moves when told to
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// CreateTestPoll stores a poll with the given options expiring expiresIn after now
func CreateTestPoll(t *testing.T, store poll.Store, now time.Time, expiresIn time.Duration, options ...string) models.Poll {
	t.Helper()

	if len(options) == 0 {
		options = []string{"Cats", "Dogs"}
	}
	p := models.Poll{
		ID:         uuid.NewString(),
		Question:   "Cats or dogs?",
		VotersSeen: make(map[string]struct{}),
		CreatedAt:  now.UTC(),
		ExpiresAt:  now.Add(expiresIn).UTC(),
	}
	for _, text := range options {
		p.Options = append(p.Options, models.Option{Text: text})
	}

	if err := store.Create(context.Background(), p); err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return p
}

// CastTestVote applies a vote directly through the store
func CastTestVote(t *testing.T, store poll.Store, pollID string, optionIndex int, voterToken string, now time.Time) models.Poll {
	t.Helper()

	p, err := store.TryApplyVote(context.Background(), pollID, optionIndex, voterToken, now)
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}

	return p
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertErrorCode decodes an error response and checks its code
func AssertErrorCode(t *testing.T, w *httptest.ResponseRecorder, code poll.Code) {
	t.Helper()
	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Code != string(code) {
		t.Errorf("Expected error code %s, got %s (message: %s)", code, resp.Code, resp.Message)
	}
}

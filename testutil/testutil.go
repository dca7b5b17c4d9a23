// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/store"
)

// TestNamespace is the address namespace used by test ledgers
const TestNamespace = "test"

// SetupTestDB opens a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.SQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.SQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

// ForEachBackend runs fn once per store backend that needs no external server
func ForEachBackend(t *testing.T, fn func(t *testing.T, s store.Store)) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		fn(t, store.NewMemoryStore())
	})
	t.Run("sqlite", func(t *testing.T) {
		fn(t, store.NewSQLStore(SetupTestDB(t), db.SQLite))
	})
}

// NewTestLedger builds a ledger with no poll_end floor and silent logging
func NewTestLedger(s store.Store) *ledger.Ledger {
	return ledger.New(s, ledger.Config{
		Namespace:    TestNamespace,
		PollEndFloor: 0,
		Logger:       slog.New(slog.DiscardHandler),
	})
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseType:  "memory",
		Namespace:     TestNamespace,
		TokenAudience: "test-audience",
		PollEndFloor:  0,
	}
}

// NewTestVoter generates a voter key pair
func NewTestVoter(t *testing.T) (ed25519.PrivateKey, models.Identity) {
	t.Helper()

	key, id, err := auth.GenerateVoterKey()
	if err != nil {
		t.Fatalf("Failed to generate voter key: %v", err)
	}
	return key, id
}

// VoterToken signs an hour-long voter token for the test audience
func VoterToken(t *testing.T, key ed25519.PrivateKey) string {
	t.Helper()

	token, err := auth.IssueVoterToken(key, GetTestConfig().TokenAudience, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue voter token: %v", err)
	}
	return token
}

// CreateTestPoll initializes a poll open from start to end inclusive.
// The logical time of creation is 0.
func CreateTestPoll(t *testing.T, l *ledger.Ledger, pollID, start, end uint64) models.Poll {
	t.Helper()

	poll, err := l.InitializePoll(context.Background(), models.InitializePollRequest{
		PollID:      pollID,
		Description: "Test Poll",
		PollStart:   start,
		PollEnd:     end,
	}, 0)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return poll
}

// AddTestCandidate registers a candidate under a poll
func AddTestCandidate(t *testing.T, l *ledger.Ledger, pollID uint64, name string) {
	t.Helper()

	if _, _, err := l.InitializeCandidate(context.Background(), pollID, name); err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}
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

// BearerHeader returns the Authorization header for a voter token
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
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

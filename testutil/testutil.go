// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/danielhkuo/scrim-pick/cliparse"
	"github.com/danielhkuo/scrim-pick/db"
	"github.com/danielhkuo/scrim-pick/dispatch"
	"github.com/danielhkuo/scrim-pick/models"
)

// SetupTestDB opens a private in-memory sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   ":memory:",
		DatabaseType:  db.TypeSQLite,
		BaseURL:       "https://scrim.test",
		AdminKeySalt:  "test-admin-salt",
		SendInterval:  time.Millisecond,
		SendTimeout:   time.Second,
		MaxMessageLen: 2000,
		Workers:       1,
		QueueSize:     8,
	}
}

// TestRoster returns ten players who can each play exactly one role, two
// per role, all scored 3. Every split that puts one of each pair on each
// side is an exact tie, so the exact pool holds 32 matches and the five
// pool is empty.
func TestRoster() []models.Player {
	pairs := [models.RoleCount][2]string{
		{"김희철", "Zeus"},
		{"Oner", "Peanut"},
		{"Faker", "Chovy"},
		{"Gumayusi", "Ruler"},
		{"Keria", "Lehends"},
	}
	var players []models.Player
	for role, pair := range pairs {
		for _, name := range pair {
			var p models.Player
			p.Name = name
			p.Scores[role] = 3
			players = append(players, p)
		}
	}
	return players
}

// RosterNames returns the names of TestRoster in order
func RosterNames() []string {
	var names []string
	for _, p := range TestRoster() {
		names = append(names, p.Name)
	}
	return names
}

// SeedPlayers stores scores for every player
func SeedPlayers(t *testing.T, conn *sql.DB, players []models.Player) {
	t.Helper()

	store := db.NewStore(conn)
	for _, p := range players {
		if err := store.UpsertPlayer(context.Background(), p); err != nil {
			t.Fatalf("Failed to seed player %s: %v", p.Name, err)
		}
	}
}

// Announcer records every message instead of sending it
type Announcer struct {
	mu       sync.Mutex
	texts    []string
	payloads []dispatch.Payload
	fail     bool
	sent     chan struct{}
}

func NewAnnouncer() *Announcer {
	return &Announcer{sent: make(chan struct{}, 256)}
}

// SetFail makes every later send report failure
func (a *Announcer) SetFail(fail bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fail = fail
}

func (a *Announcer) record(text string, payload *dispatch.Payload) bool {
	a.mu.Lock()
	if payload != nil {
		a.payloads = append(a.payloads, *payload)
	} else {
		a.texts = append(a.texts, text)
	}
	fail := a.fail
	a.mu.Unlock()

	select {
	case a.sent <- struct{}{}:
	default:
	}
	return !fail
}

func (a *Announcer) SendText(_ context.Context, content string) bool {
	return a.record(content, nil)
}

func (a *Announcer) SendLong(_ context.Context, content string) bool {
	return a.record(content, nil)
}

func (a *Announcer) SendPayload(_ context.Context, p dispatch.Payload) bool {
	return a.record("", &p)
}

// Texts returns every text message sent so far
func (a *Announcer) Texts() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.texts...)
}

// Payloads returns every interactive message sent so far
func (a *Announcer) Payloads() []dispatch.Payload {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]dispatch.Payload(nil), a.payloads...)
}

// WaitFor blocks until at least n messages (texts plus payloads) were sent
func (a *Announcer) WaitFor(t *testing.T, n int) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		a.mu.Lock()
		count := len(a.texts) + len(a.payloads)
		a.mu.Unlock()
		if count >= n {
			return
		}
		select {
		case <-a.sent:
		case <-deadline:
			t.Fatalf("Timed out waiting for %d messages, got %d", n, count)
		}
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

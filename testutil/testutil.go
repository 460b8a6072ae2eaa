// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/malek5552/ramadan-games/auth"
	"github.com/malek5552/ramadan-games/cliparse"
	"github.com/malek5552/ramadan-games/lock"
	"github.com/malek5552/ramadan-games/middleware"
	"github.com/malek5552/ramadan-games/models"
	"github.com/malek5552/ramadan-games/schedule"
	"github.com/malek5552/ramadan-games/store"
)

// TestSessionSecret signs session cookies in tests
const TestSessionSecret = "test-session-secret"

// TestTime is the fixed clock used by services built with NewEnv
var TestTime = time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)

// Env bundles a temp-dir JSON store with the services built on it.
type Env struct {
	Store    *store.FileStore
	Service  *schedule.Service
	Accounts *auth.Accounts
	Sessions *auth.SessionStore
	Config   cliparse.Config
}

// SetupTestStore creates an empty JSON store in a fresh temp directory
func SetupTestStore(t *testing.T) *store.FileStore {
	t.Helper()

	s, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	return s
}

// NewEnv wires a service, accounts and sessions around a fresh store, each
// with its own local lock like the server does.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	s := SetupTestStore(t)
	svc := schedule.NewService(s, lock.NewLocal())
	svc.SetClock(func() time.Time { return TestTime })

	return &Env{
		Store:    s,
		Service:  svc,
		Accounts: auth.NewAccounts(s, lock.NewLocal()),
		Sessions: auth.NewSessionStore(TestSessionSecret),
		Config:   GetTestConfig(s.Dir()),
	}
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(dataDir string) cliparse.Config {
	return cliparse.Config{
		Port: 3318,
		Store: cliparse.StoreConfig{
			Type:    cliparse.StoreJSON,
			DataDir: dataDir,
		},
		SessionSecret: TestSessionSecret,
		LockMode:      cliparse.LockLocal,
	}
}

// SeedSchedule replaces the stored schedule with a generated one of n days
func SeedSchedule(t *testing.T, s schedule.DayStore, n int) []models.Day {
	t.Helper()

	days, err := schedule.InitializeSchedule(n, schedule.DefaultGames, schedule.DefaultHosts, TestTime)
	if err != nil {
		t.Fatalf("Failed to generate schedule: %v", err)
	}
	if err := s.ReplaceDays(context.Background(), days); err != nil {
		t.Fatalf("Failed to seed schedule: %v", err)
	}
	return days
}

// CreateTestUser registers an account with password "password"
func (e *Env) CreateTestUser(t *testing.T, username, role string) models.User {
	t.Helper()

	user, _, err := e.Accounts.Provision(context.Background(), username, "password", role, false)
	if err != nil {
		t.Fatalf("Failed to create test user %s: %v", username, err)
	}
	return user
}

// LoginCookie returns a session cookie for username without going through
// the password check. The account does not need to exist.
func (e *Env) LoginCookie(t *testing.T, username, role string) *http.Cookie {
	t.Helper()

	value, _, err := e.Sessions.Create(models.User{ID: "id-" + username, Username: username, Role: role})
	if err != nil {
		t.Fatalf("Failed to create session for %s: %v", username, err)
	}
	return &http.Cookie{Name: middleware.SessionCookieName, Value: value}
}

// LoadDays reads the stored schedule, failing the test on error
func (e *Env) LoadDays(t *testing.T) []models.Day {
	t.Helper()

	days, err := e.Store.LoadDays(context.Background())
	if err != nil {
		t.Fatalf("Failed to load days: %v", err)
	}
	return days
}

// MakeRequest creates an HTTP test request, optionally carrying a session cookie
func MakeRequest(method, path string, body interface{}, cookie *http.Cookie) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if cookie != nil {
		req.AddCookie(cookie)
	}

	return req
}

// SessionCookie returns the session cookie set on a response, or nil
func SessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
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

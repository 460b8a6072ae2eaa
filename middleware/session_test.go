// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/malek5552/ramadan-games/auth"
	"github.com/malek5552/ramadan-games/models"
)

func newSessions(t *testing.T) (*auth.SessionStore, string, string) {
	t.Helper()
	sessions := auth.NewSessionStore("test-secret")
	userValue, _, err := sessions.Create(models.User{ID: "u1", Username: "alice", Role: models.RoleUser})
	if err != nil {
		t.Fatal(err)
	}
	adminValue, _, err := sessions.Create(models.User{ID: "a1", Username: "boss", Role: models.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}
	return sessions, userValue, adminValue
}

func requestWithCookie(value string) *http.Request {
	req := httptest.NewRequest("POST", "/api/vote/1", nil)
	if value != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: value})
	}
	return req
}

func TestRequireAuth(t *testing.T) {
	sessions, userValue, _ := newSessions(t)

	var seen auth.Session
	handler := RequireAuth(sessions, func(w http.ResponseWriter, r *http.Request) {
		seen, _ = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	testCases := []struct {
		name       string
		cookie     string
		wantStatus int
	}{
		{"valid session", userValue, http.StatusOK},
		{"no cookie", "", http.StatusUnauthorized},
		{"forged cookie", "token.signature", http.StatusUnauthorized},
		{"unsigned token", "abc", http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			seen = auth.Session{}
			w := httptest.NewRecorder()

			handler(w, requestWithCookie(tc.cookie))

			if w.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, w.Code)
			}
			if tc.wantStatus == http.StatusOK && seen.Username != "alice" {
				t.Errorf("Expected session for alice in context, got %+v", seen)
			}
			if tc.wantStatus != http.StatusOK && seen.Username != "" {
				t.Error("Handler should not run without a session")
			}
		})
	}
}

func TestRequireAuth_ClearsStaleCookie(t *testing.T) {
	sessions, userValue, _ := newSessions(t)
	sessions.Destroy(userValue)

	handler := RequireAuth(sessions, func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not run")
	})

	w := httptest.NewRecorder()
	handler(w, requestWithCookie(userValue))

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookieName || cookies[0].MaxAge >= 0 {
		t.Errorf("Expected session cookie to be cleared, got %+v", cookies)
	}
}

func TestRequireAdmin(t *testing.T) {
	sessions, userValue, adminValue := newSessions(t)

	handler := RequireAdmin(sessions, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	testCases := []struct {
		name       string
		cookie     string
		wantStatus int
	}{
		{"admin", adminValue, http.StatusNoContent},
		{"regular user", userValue, http.StatusForbidden},
		{"anonymous", "", http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler(w, requestWithCookie(tc.cookie))
			if w.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, w.Code)
			}
		})
	}
}

func TestSessionFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if _, ok := SessionFromContext(req.Context()); ok {
		t.Error("Expected no session in a fresh context")
	}
}

func TestSessionCookies(t *testing.T) {
	w := httptest.NewRecorder()
	SetSessionCookie(w, httptest.NewRequest("POST", "/login", nil), "token.sig")

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != SessionCookieName || c.Value != "token.sig" {
		t.Errorf("Unexpected cookie %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly || c.SameSite != http.SameSiteLaxMode || c.Path != "/" {
		t.Errorf("Expected HttpOnly Lax cookie on /, got %+v", c)
	}
	if c.MaxAge != int(auth.SessionLifetime.Seconds()) {
		t.Errorf("Expected MaxAge %d, got %d", int(auth.SessionLifetime.Seconds()), c.MaxAge)
	}

	w = httptest.NewRecorder()
	ClearSessionCookie(w)
	cleared := w.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 || cleared[0].Value != "" {
		t.Errorf("Expected expired empty cookie, got %+v", cleared)
	}
}

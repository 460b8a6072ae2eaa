// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/malek5552/ramadan-games/models"
)

var ErrInvalidSession = errors.New("invalid or expired session")

// SessionLifetime matches the login cookie max age
const SessionLifetime = 24 * time.Hour

// Session is the identity attached to a logged-in request
type Session struct {
	UserID    string
	Username  string
	Role      string
	ExpiresAt time.Time
}

func (s Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

// SessionStore is an in-memory session table keyed by token. Cookie values
// are signed tokens; a value with a bad signature never reaches the table.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	secret   string
	lifetime time.Duration
	now      func() time.Time
}

func NewSessionStore(secret string) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]Session),
		secret:   secret,
		lifetime: SessionLifetime,
		now:      time.Now,
	}
}

// SetClock replaces the time source, for tests
func (s *SessionStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Create starts a session for user and returns the signed cookie value
func (s *SessionStore) Create(user models.User) (string, Session, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return "", Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	session := Session{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: s.now().Add(s.lifetime),
	}
	s.sessions[token] = session

	return SignToken(token, s.secret), session, nil
}

// Lookup returns the live session for a signed cookie value
func (s *SessionStore) Lookup(cookieValue string) (Session, error) {
	token, err := VerifyToken(cookieValue, s.secret)
	if err != nil {
		return Session{}, ErrInvalidSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return Session{}, ErrInvalidSession
	}
	if !s.now().Before(session.ExpiresAt) {
		delete(s.sessions, token)
		return Session{}, ErrInvalidSession
	}
	return session, nil
}

// Destroy ends the session for a signed cookie value. Unknown values are ignored.
func (s *SessionStore) Destroy(cookieValue string) {
	token, err := VerifyToken(cookieValue, s.secret)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Len returns the number of sessions in the table, expired ones included
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) pruneLocked() {
	now := s.now()
	for token, session := range s.sessions {
		if !now.Before(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

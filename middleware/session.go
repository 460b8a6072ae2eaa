// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package middleware

import (
	"context"
	"net/http"

	"github.com/malek5552/ramadan-games/auth"
)

// SessionCookieName is the cookie carrying the signed session token
const SessionCookieName = "session"

// SessionLookup resolves a cookie value to a live session
type SessionLookup interface {
	Lookup(cookieValue string) (auth.Session, error)
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying session
func WithSession(ctx context.Context, session auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session stored by RequireAuth
func SessionFromContext(ctx context.Context) (auth.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(auth.Session)
	return session, ok
}

// RequireAuth rejects requests without a valid session cookie with 401
func RequireAuth(sessions SessionLookup, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Login required")
			return
		}

		session, err := sessions.Lookup(cookie.Value)
		if err != nil {
			ClearSessionCookie(w)
			ErrorResponse(w, http.StatusUnauthorized, "Session expired, please log in again")
			return
		}

		next(w, r.WithContext(WithSession(r.Context(), session)))
	}
}

// RequireAdmin is RequireAuth plus a 403 for non-admin sessions
func RequireAdmin(sessions SessionLookup, next http.HandlerFunc) http.HandlerFunc {
	return RequireAuth(sessions, func(w http.ResponseWriter, r *http.Request) {
		session, _ := SessionFromContext(r.Context())
		if !session.IsAdmin() {
			ErrorResponse(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r)
	})
}

// SetSessionCookie stores a signed session value on the client
func SetSessionCookie(w http.ResponseWriter, r *http.Request, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(auth.SessionLifetime.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie tells the client to drop its session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

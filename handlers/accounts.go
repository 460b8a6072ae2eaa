// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/malek5552/ramadan-games/auth"
	"github.com/malek5552/ramadan-games/cliparse"
	"github.com/malek5552/ramadan-games/middleware"
	"github.com/malek5552/ramadan-games/models"
)

type AccountHandler struct {
	accounts *auth.Accounts
	sessions *auth.SessionStore
	cfg      cliparse.Config
}

func NewAccountHandler(accounts *auth.Accounts, sessions *auth.SessionStore, cfg cliparse.Config) *AccountHandler {
	return &AccountHandler{accounts: accounts, sessions: sessions, cfg: cfg}
}

// Register handles POST /register
// New accounts always get the user role and are logged in right away.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Username, req.Password, models.RoleUser)
	if err != nil {
		writeAccountError(w, err)
		return
	}

	h.startSession(w, r, user, http.StatusCreated)
}

// Login handles POST /login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Warn("failed login",
				"username", req.Username,
				"ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.SessionSecret),
			)
		}
		writeAccountError(w, err)
		return
	}

	h.startSession(w, r, user, http.StatusOK)
}

// Logout handles POST /logout
// Logging out without a session is not an error.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		h.sessions.Destroy(cookie.Value)
	}
	middleware.ClearSessionCookie(w)

	middleware.JSONResponse(w, http.StatusOK, models.ActionResponse{
		Success: true,
		Message: "Logged out",
	})
}

// Me handles GET /api/me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		Success: true,
		User: models.PublicUser{
			ID:       session.UserID,
			Username: session.Username,
			Role:     session.Role,
		},
	})
}

func (h *AccountHandler) startSession(w http.ResponseWriter, r *http.Request, user models.User, status int) {
	value, _, err := h.sessions.Create(user)
	if err != nil {
		slog.Error("failed to create session", "error", err, "username", user.Username)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start session")
		return
	}
	middleware.SetSessionCookie(w, r, value)

	slog.Info("session started", "username", user.Username, "role", user.Role)

	middleware.JSONResponse(w, status, models.SessionResponse{
		Success: true,
		User:    user.Public(),
	})
}

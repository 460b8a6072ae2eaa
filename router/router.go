// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package router

import (
	"net/http"

	"github.com/malek5552/ramadan-games/auth"
	"github.com/malek5552/ramadan-games/cliparse"
	"github.com/malek5552/ramadan-games/handlers"
	"github.com/malek5552/ramadan-games/middleware"
	"github.com/malek5552/ramadan-games/schedule"
)

func NewRouter(svc *schedule.Service, accounts *auth.Accounts, sessions *auth.SessionStore, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	dayHandler := handlers.NewDayHandler(svc)
	accountHandler := handlers.NewAccountHandler(accounts, sessions, cfg)

	user := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(sessions, h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(sessions, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Schedule (public)
	mux.HandleFunc("GET /api/days", middleware.WithLogging(dayHandler.ListDays))
	mux.HandleFunc("GET /api/days/{dayNumber}", middleware.WithLogging(dayHandler.GetDay))
	mux.HandleFunc("GET /api/next-session", middleware.WithLogging(dayHandler.NextSession))

	// Voting (logged in)
	mux.HandleFunc("POST /api/vote/{dayNumber}", user(dayHandler.Vote))

	// Schedule management (admin)
	mux.HandleFunc("POST /api/day/update/{dayNumber}", admin(dayHandler.UpdateDay))
	mux.HandleFunc("POST /api/day/delete/{dayNumber}", admin(dayHandler.DeleteDay))
	mux.HandleFunc("POST /api/init-days", admin(dayHandler.InitDays))

	// Accounts
	mux.HandleFunc("POST /register", middleware.WithLogging(accountHandler.Register))
	mux.HandleFunc("POST /login", middleware.WithLogging(accountHandler.Login))
	mux.HandleFunc("POST /logout", middleware.WithLogging(accountHandler.Logout))
	mux.HandleFunc("GET /api/me", user(accountHandler.Me))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ramadan-games API v1"))
	})

	return mux
}

// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (request_id, method, path, remote) and completion
(status, duration_ms).

# Sessions

Routes that need a logged-in user are wrapped with RequireAuth; admin routes
with RequireAdmin:

	mux.HandleFunc("POST /api/vote/{dayNumber}",
		middleware.WithLogging(middleware.RequireAuth(sessions, h.Vote)))

The session is read from the "session" cookie and stored in the request
context. Handlers get it back with SessionFromContext. A missing or invalid
session is 401, a non-admin session on an admin route is 403.

# CORS Middleware

Enable cross-origin requests for the configured frontend origins:

	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigins, mux),
	}

A listed origin is echoed with credentials allowed so the session cookie is
sent along. Any other origin gets no CORS headers and its preflight is 403.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies (at most 64 KiB):

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used for IP hashing in failed login logs.
*/
package middleware

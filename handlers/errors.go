// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/malek5552/ramadan-games/auth"
	"github.com/malek5552/ramadan-games/middleware"
	"github.com/malek5552/ramadan-games/schedule"
)

// writeScheduleError maps a schedule service error to its HTTP response
func writeScheduleError(w http.ResponseWriter, err error, dayNumber int) {
	switch {
	case errors.Is(err, schedule.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Day not found")
	case errors.Is(err, schedule.ErrDuplicateVote):
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted for this day")
	case errors.Is(err, schedule.ErrInvalidVote), errors.Is(err, schedule.ErrInvalidSchedule):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("schedule operation failed", "error", err, "day", dayNumber)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save schedule")
	}
}

// writeAccountError maps an account error to its HTTP response
func writeAccountError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrUsernameTaken):
		middleware.ErrorResponse(w, http.StatusConflict, "Username already taken")
	case errors.Is(err, auth.ErrInvalidCredentials):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidAccount):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("account operation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Account storage error")
	}
}

// dayNumberParam reads the {dayNumber} path value. It writes a 400 and
// returns false when the value is not a positive integer.
func dayNumberParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(r.PathValue("dayNumber"))
	if err != nil || n < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid day number")
		return 0, false
	}
	return n, true
}

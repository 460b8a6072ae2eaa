// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/malek5552/ramadan-games/middleware"
	"github.com/malek5552/ramadan-games/models"
	"github.com/malek5552/ramadan-games/schedule"
)

type DayHandler struct {
	svc *schedule.Service
	now func() time.Time
}

func NewDayHandler(svc *schedule.Service) *DayHandler {
	return &DayHandler{svc: svc, now: time.Now}
}

// SetClock replaces the time source used for the session countdown
func (h *DayHandler) SetClock(now func() time.Time) {
	h.now = now
}

// ListDays handles GET /api/days
func (h *DayHandler) ListDays(w http.ResponseWriter, r *http.Request) {
	days, err := h.svc.Days(r.Context())
	if err != nil {
		writeScheduleError(w, err, 0)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DaysResponse{
		Success: true,
		Days:    days,
	})
}

// GetDay handles GET /api/days/{dayNumber}
func (h *DayHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	dayNumber, ok := dayNumberParam(w, r)
	if !ok {
		return
	}

	day, err := h.svc.Day(r.Context(), dayNumber)
	if err != nil {
		writeScheduleError(w, err, dayNumber)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DayDetailResponse{
		Success: true,
		Day:     day,
		Tally:   schedule.Tally(day),
	})
}

// Vote handles POST /api/vote/{dayNumber}
func (h *DayHandler) Vote(w http.ResponseWriter, r *http.Request) {
	dayNumber, ok := dayNumberParam(w, r)
	if !ok {
		return
	}

	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	day, err := h.svc.Vote(r.Context(), dayNumber, session.Username, req.Vote)
	if err != nil {
		writeScheduleError(w, err, dayNumber)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ActionResponse{
		Success: true,
		Message: voteMessage(day),
		Day:     &day,
	})
}

func voteMessage(day models.Day) string {
	if day.IsConfirmed {
		return "Vote recorded, the session is confirmed"
	}
	return "Vote recorded"
}

// UpdateDay handles POST /api/day/update/{dayNumber}
func (h *DayHandler) UpdateDay(w http.ResponseWriter, r *http.Request) {
	dayNumber, ok := dayNumberParam(w, r)
	if !ok {
		return
	}

	var patch models.DayPatch
	if err := middleware.ParseJSONBody(r, &patch); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	day, err := h.svc.Edit(r.Context(), dayNumber, patch)
	if err != nil {
		writeScheduleError(w, err, dayNumber)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ActionResponse{
		Success: true,
		Message: "Day updated",
		Day:     &day,
	})
}

// DeleteDay handles POST /api/day/delete/{dayNumber}
// Deleting a day that does not exist succeeds.
func (h *DayHandler) DeleteDay(w http.ResponseWriter, r *http.Request) {
	dayNumber, ok := dayNumberParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), dayNumber); err != nil {
		writeScheduleError(w, err, dayNumber)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ActionResponse{
		Success: true,
		Message: "Day deleted",
	})
}

// InitDays handles POST /api/init-days
// The body is optional; missing fields use the default schedule.
func (h *DayHandler) InitDays(w http.ResponseWriter, r *http.Request) {
	var req models.InitDaysRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	length := req.Length
	if length == 0 {
		length = schedule.DefaultLength
	}
	games := req.Games
	if games == nil {
		games = schedule.DefaultGames
	}
	hosts := req.Hosts
	if hosts == nil {
		hosts = schedule.DefaultHosts
	}

	days, err := h.svc.Initialize(r.Context(), length, games, hosts)
	if err != nil {
		writeScheduleError(w, err, 0)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DaysResponse{
		Success: true,
		Days:    days,
	})
}

// NextSession handles GET /api/next-session
func (h *DayHandler) NextSession(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	start := schedule.NextSession(now)

	middleware.JSONResponse(w, http.StatusOK, models.NextSessionResponse{
		StartsAt:     start,
		SecondsUntil: int64(start.Sub(now).Seconds()),
		StartsIn:     humanize.RelTime(now, start, "from now", "ago"),
	})
}

// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Ramadan games API.

# Handler Types

Each handler is a struct holding the services it calls:

  - DayHandler: schedule listing, voting, admin edits, initialization
  - AccountHandler: registration, login, logout, current user

Handlers are created via constructor functions:

	dayHandler := handlers.NewDayHandler(svc)
	accountHandler := handlers.NewAccountHandler(accounts, sessions, cfg)

# Schedule

	GET  /api/days                    → ListDays
	GET  /api/days/{dayNumber}        → GetDay (day plus vote tally)
	GET  /api/next-session            → NextSession (countdown to 23:30 Riyadh)
	POST /api/vote/{dayNumber}        → Vote (logged in)
	POST /api/day/update/{dayNumber}  → UpdateDay (admin)
	POST /api/day/delete/{dayNumber}  → DeleteDay (admin)
	POST /api/init-days               → InitDays (admin)

Handlers never check the role themselves: the router wraps them with
middleware.RequireAuth or middleware.RequireAdmin. Vote takes the voter
name from the session in the request context.

# Errors

Service errors are mapped to status codes in one place:

	schedule.ErrNotFound        → 404
	schedule.ErrDuplicateVote   → 409
	schedule.ErrInvalidVote     → 400
	schedule.ErrInvalidSchedule → 400
	anything else               → 500 (logged)

Account errors map the same way: ErrUsernameTaken is 409,
ErrInvalidCredentials is 401, ErrInvalidAccount is 400.
*/
package handlers

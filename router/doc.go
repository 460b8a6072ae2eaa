// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

/*
Package router defines HTTP routes for the Ramadan games API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, accounts, sessions, cfg)

# Endpoints

Health:

	GET /health

Schedule (public):

	GET /api/days               - All days with their votes
	GET /api/days/{dayNumber}   - One day and its tally
	GET /api/next-session       - Countdown to the next session

Voting (requires a session cookie):

	POST /api/vote/{dayNumber}  - Body {"vote": "yes"|"no"}

Schedule management (requires an admin session):

	POST /api/day/update/{dayNumber} - Patch game, time, host, notes, special flag
	POST /api/day/delete/{dayNumber} - Remove a day
	POST /api/init-days              - Replace the schedule with a generated one

Accounts:

	POST /register  - Create a player account and log in
	POST /login     - Start a session
	POST /logout    - End the session
	GET  /api/me    - Current session user

Every route except /health is wrapped in middleware.WithLogging.
*/
package router

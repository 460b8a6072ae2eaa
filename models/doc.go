// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

JSON field names are camelCase so that data files written by earlier
versions of the site load unchanged.

# Request Types

  - VoteRequest: vote ("yes" or "no")
  - DayPatch: gameName, time, host, notes, isSpecialEvent (all optional)
  - InitDaysRequest: length, games, hosts (all optional)
  - CredentialsRequest: username, password

# Response Types

  - ActionResponse: success, message, day
  - DaysResponse: success, days
  - DayDetailResponse: success, day, tally
  - SessionResponse: success, user
  - NextSessionResponse: startsAt, secondsUntil, startsIn
  - ErrorResponse: success (always false), error, message

# Domain Types

  - Day: one night of the schedule with its embedded votes
  - Vote: a single yes/no vote by a user
  - Tally: yes/no counts for a day
  - User: account record with bcrypt password hash
  - PublicUser: the client-safe view of a User

# Constants

Vote values:

	VoteYes = "yes"
	VoteNo  = "no"

Roles:

	RoleAdmin = "admin"
	RoleUser  = "user"

A day is confirmed once it collects ConfirmationThreshold (3) yes votes.
*/
package models

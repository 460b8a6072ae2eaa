// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

/*
Package schedule holds the voting rules for the nightly game schedule.

# Rules

The rule functions take the whole day collection and return a new one.
They never modify their input and never touch storage:

	days, err := schedule.CastVote(days, 3, "alice", models.VoteYes, time.Now())
	days, err := schedule.EditDay(days, 3, patch)
	days := schedule.DeleteDay(days, 3)
	days, err := schedule.InitializeSchedule(30, schedule.DefaultGames, schedule.DefaultHosts, time.Now())

A user may vote once per day. The day becomes confirmed when it reaches
models.ConfirmationThreshold yes votes and stays confirmed afterwards.

# Errors

  - ErrNotFound: no day with that number
  - ErrDuplicateVote: the user already voted on that day
  - ErrInvalidVote: vote is not yes/no, or the voter is empty
  - ErrInvalidSchedule: bad length or empty pools
  - ErrPersistence: loading or saving failed (wraps the cause)

# Service

Service wraps the rules in load → decide → replace, holding a lock.Locker
for the whole sequence so concurrent votes cannot overwrite each other:

	svc := schedule.NewService(store, lock.NewLocal())
	day, err := svc.Vote(ctx, 3, "alice", models.VoteYes)

# Countdown

NextSession returns the next 23:30 in Riyadh time.
*/
package schedule

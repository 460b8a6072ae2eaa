// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package schedule

import "time"

// Sessions start at 23:30 Riyadh time, which has no daylight saving.
var Riyadh = time.FixedZone("AST", 3*60*60)

const (
	sessionHour   = 23
	sessionMinute = 30
)

// NextSession returns the start of the next nightly session at or after now.
func NextSession(now time.Time) time.Time {
	local := now.In(Riyadh)
	start := time.Date(local.Year(), local.Month(), local.Day(), sessionHour, sessionMinute, 0, 0, Riyadh)
	if start.Before(local) {
		start = start.AddDate(0, 0, 1)
	}
	return start
}

// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package schedule

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/malek5552/ramadan-games/models"
)

var (
	ErrNotFound        = errors.New("day not found")
	ErrDuplicateVote   = errors.New("user has already voted for this day")
	ErrInvalidVote     = errors.New("invalid vote")
	ErrInvalidSchedule = errors.New("invalid schedule")
	ErrPersistence     = errors.New("schedule persistence failure")
)

// DefaultSessionTime is the display time of every generated day.
const DefaultSessionTime = "11:30 PM"

// DefaultLength is the number of nights in a generated schedule.
const DefaultLength = 30

// MaxLength bounds a generated schedule to one year of nights.
const MaxLength = 366

var (
	DefaultGames = []string{"FIFA", "Warzone", "Fortnite", "Rocket League", "Valorant", "Among Us"}
	DefaultHosts = []string{"أحمد", "محمد", "عبدالله", "خالد", "سعد"}
)

// CastVote appends voter's vote to the day keyed by dayNumber and returns
// the updated collection. days itself is never modified.
func CastVote(days []models.Day, dayNumber int, voter, value string, at time.Time) ([]models.Day, error) {
	if voter == "" {
		return nil, fmt.Errorf("%w: voter is required", ErrInvalidVote)
	}
	if value != models.VoteYes && value != models.VoteNo {
		return nil, fmt.Errorf("%w: %q is not yes or no", ErrInvalidVote, value)
	}

	i := indexOf(days, dayNumber)
	if i < 0 {
		return nil, ErrNotFound
	}

	day := days[i]
	if HasVoted(day, voter) {
		return nil, ErrDuplicateVote
	}

	// Clip so append never writes into the caller's backing array
	day.Votes = append(slices.Clip(day.Votes), models.Vote{
		User:      voter,
		Vote:      value,
		CreatedAt: models.NewTimestamp(at),
	})

	yes, _ := CountVotes(day)
	if yes >= models.ConfirmationThreshold {
		day.IsConfirmed = true
	}

	out := slices.Clone(days)
	out[i] = day
	return out, nil
}

// EditDay applies the fields present in patch to the day keyed by dayNumber.
func EditDay(days []models.Day, dayNumber int, patch models.DayPatch) ([]models.Day, error) {
	i := indexOf(days, dayNumber)
	if i < 0 {
		return nil, ErrNotFound
	}

	day := days[i]
	if patch.GameName != nil {
		day.GameName = *patch.GameName
	}
	if patch.Time != nil {
		day.Time = *patch.Time
	}
	if patch.Host != nil {
		day.Host = *patch.Host
	}
	if patch.Notes != nil {
		day.Notes = *patch.Notes
	}
	if patch.IsSpecialEvent != nil {
		day.IsSpecialEvent = *patch.IsSpecialEvent
	}

	out := slices.Clone(days)
	out[i] = day
	return out, nil
}

// DeleteDay removes every day keyed by dayNumber. A missing key is not an error.
func DeleteDay(days []models.Day, dayNumber int) []models.Day {
	out := make([]models.Day, 0, len(days))
	for _, d := range days {
		if d.DayNumber != dayNumber {
			out = append(out, d)
		}
	}
	return out
}

// InitializeSchedule generates days 1..length, cycling through the game and
// host pools by day number. Every tenth day is a special event.
func InitializeSchedule(length int, games, hosts []string, at time.Time) ([]models.Day, error) {
	if length < 1 || length > MaxLength {
		return nil, fmt.Errorf("%w: length must be 1-%d, got %d", ErrInvalidSchedule, MaxLength, length)
	}
	if len(games) == 0 || len(hosts) == 0 {
		return nil, fmt.Errorf("%w: game and host pools cannot be empty", ErrInvalidSchedule)
	}

	days := make([]models.Day, 0, length)
	for n := 1; n <= length; n++ {
		days = append(days, models.Day{
			DayNumber:      n,
			GameName:       games[n%len(games)],
			Time:           DefaultSessionTime,
			Host:           hosts[n%len(hosts)],
			Notes:          fmt.Sprintf("يوم %d من رمضان", n),
			IsSpecialEvent: n%10 == 0,
			Votes:          []models.Vote{},
			IsConfirmed:    false,
			CreatedAt:      models.NewTimestamp(at),
		})
	}
	return days, nil
}

// FindDay returns the day keyed by dayNumber.
func FindDay(days []models.Day, dayNumber int) (models.Day, error) {
	i := indexOf(days, dayNumber)
	if i < 0 {
		return models.Day{}, ErrNotFound
	}
	return days[i], nil
}

func HasVoted(day models.Day, voter string) bool {
	return slices.ContainsFunc(day.Votes, func(v models.Vote) bool {
		return v.User == voter
	})
}

func CountVotes(day models.Day) (yes, no int) {
	for _, v := range day.Votes {
		switch v.Vote {
		case models.VoteYes:
			yes++
		case models.VoteNo:
			no++
		}
	}
	return yes, no
}

func Tally(day models.Day) models.Tally {
	yes, no := CountVotes(day)
	t := models.Tally{Yes: yes, No: no}
	if !day.IsConfirmed {
		t.Needed = max(models.ConfirmationThreshold-yes, 0)
	}
	return t
}

func indexOf(days []models.Day, dayNumber int) int {
	return slices.IndexFunc(days, func(d models.Day) bool {
		return d.DayNumber == dayNumber
	})
}

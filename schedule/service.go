// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/malek5552/ramadan-games/lock"
	"github.com/malek5552/ramadan-games/models"
)

// DayStore persists the whole day collection at once.
type DayStore interface {
	LoadDays(ctx context.Context) ([]models.Day, error)
	ReplaceDays(ctx context.Context, days []models.Day) error
}

type Service struct {
	store  DayStore
	locker lock.Locker
	now    func() time.Time
}

// NewService returns a Service that holds locker around every
// load-modify-write sequence. A nil locker means no serialization.
func NewService(store DayStore, locker lock.Locker) *Service {
	if locker == nil {
		locker = lock.Noop{}
	}
	return &Service{
		store:  store,
		locker: locker,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source used for vote and day timestamps.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) Days(ctx context.Context) ([]models.Day, error) {
	days, err := s.store.LoadDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return days, nil
}

func (s *Service) Day(ctx context.Context, dayNumber int) (models.Day, error) {
	days, err := s.Days(ctx)
	if err != nil {
		return models.Day{}, err
	}
	return FindDay(days, dayNumber)
}

// Vote records voter's vote on a day and returns the updated day.
func (s *Service) Vote(ctx context.Context, dayNumber int, voter, value string) (models.Day, error) {
	var updated models.Day
	err := s.mutate(ctx, func(days []models.Day) ([]models.Day, error) {
		out, err := CastVote(days, dayNumber, voter, value, s.now())
		if err != nil {
			return nil, err
		}
		updated, _ = FindDay(out, dayNumber)
		return out, nil
	})
	if err != nil {
		return models.Day{}, err
	}

	slog.Info("vote cast", "day", dayNumber, "user", voter, "vote", value, "confirmed", updated.IsConfirmed)
	return updated, nil
}

func (s *Service) Edit(ctx context.Context, dayNumber int, patch models.DayPatch) (models.Day, error) {
	var updated models.Day
	err := s.mutate(ctx, func(days []models.Day) ([]models.Day, error) {
		out, err := EditDay(days, dayNumber, patch)
		if err != nil {
			return nil, err
		}
		updated, _ = FindDay(out, dayNumber)
		return out, nil
	})
	if err != nil {
		return models.Day{}, err
	}

	slog.Info("day updated", "day", dayNumber)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, dayNumber int) error {
	err := s.mutate(ctx, func(days []models.Day) ([]models.Day, error) {
		return DeleteDay(days, dayNumber), nil
	})
	if err != nil {
		return err
	}

	slog.Info("day deleted", "day", dayNumber)
	return nil
}

// Initialize discards the current schedule and writes a freshly generated one.
func (s *Service) Initialize(ctx context.Context, length int, games, hosts []string) ([]models.Day, error) {
	var generated []models.Day
	err := s.mutate(ctx, func([]models.Day) ([]models.Day, error) {
		var err error
		generated, err = InitializeSchedule(length, games, hosts, s.now())
		return generated, err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("schedule initialized", "days", len(generated))
	return generated, nil
}

// mutate runs fn between a full load and a full replace while holding the
// lock. Nothing is written when fn fails.
func (s *Service) mutate(ctx context.Context, fn func([]models.Day) ([]models.Day, error)) error {
	release, err := s.locker.Lock(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	defer release()

	days, err := s.store.LoadDays(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	updated, err := fn(days)
	if err != nil {
		return err
	}

	if err := s.store.ReplaceDays(ctx, updated); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/malek5552/ramadan-games/lock"
	"github.com/malek5552/ramadan-games/models"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidAccount     = errors.New("invalid account details")
)

const (
	MinUsernameLength = 2
	MaxUsernameLength = 50
	// bcrypt ignores everything past 72 bytes
	MaxPasswordBytes = 72
)

// UserStore persists the whole user collection at once.
type UserStore interface {
	LoadUsers(ctx context.Context) ([]models.User, error)
	ReplaceUsers(ctx context.Context, users []models.User) error
}

type Accounts struct {
	store  UserStore
	locker lock.Locker
	now    func() time.Time
}

// NewAccounts returns an Accounts that holds locker while changing the user
// collection. A nil locker means no serialization.
func NewAccounts(store UserStore, locker lock.Locker) *Accounts {
	if locker == nil {
		locker = lock.Noop{}
	}
	return &Accounts{
		store:  store,
		locker: locker,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a new account with a hashed password.
func (a *Accounts) Register(ctx context.Context, username, password, role string) (models.User, error) {
	user, _, err := a.Provision(ctx, username, password, role, false)
	return user, err
}

// Provision creates an account, or when overwrite is set resets the password
// and role of an existing one. created reports which happened.
func (a *Accounts) Provision(ctx context.Context, username, password, role string, overwrite bool) (user models.User, created bool, err error) {
	username = strings.TrimSpace(username)
	if err := validateAccount(username, password, role); err != nil {
		return models.User{}, false, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, false, err
	}

	release, err := a.locker.Lock(ctx)
	if err != nil {
		return models.User{}, false, fmt.Errorf("failed to lock users: %w", err)
	}
	defer release()

	users, err := a.store.LoadUsers(ctx)
	if err != nil {
		return models.User{}, false, fmt.Errorf("failed to load users: %w", err)
	}

	i := slices.IndexFunc(users, func(u models.User) bool { return u.Username == username })
	switch {
	case i >= 0 && !overwrite:
		return models.User{}, false, ErrUsernameTaken
	case i >= 0:
		users = slices.Clone(users)
		users[i].PasswordHash = hash
		users[i].Role = role
		user = users[i]
	default:
		id, err := NewUserID()
		if err != nil {
			return models.User{}, false, err
		}
		user = models.User{
			ID:           id,
			Username:     username,
			PasswordHash: hash,
			Role:         role,
			CreatedAt:    models.NewTimestamp(a.now()),
		}
		users = append(slices.Clip(users), user)
		created = true
	}

	if err := a.store.ReplaceUsers(ctx, users); err != nil {
		return models.User{}, false, fmt.Errorf("failed to save users: %w", err)
	}

	slog.Info("account saved", "username", username, "role", role, "created", created)
	return user, created, nil
}

// Authenticate returns the user whose name and password match.
func (a *Accounts) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	users, err := a.store.LoadUsers(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to load users: %w", err)
	}

	username = strings.TrimSpace(username)
	i := slices.IndexFunc(users, func(u models.User) bool { return u.Username == username })
	if i < 0 || !CheckPassword(users[i].PasswordHash, password) {
		return models.User{}, ErrInvalidCredentials
	}
	return users[i], nil
}

func validateAccount(username, password, role string) error {
	if n := utf8.RuneCountInString(username); n < MinUsernameLength || n > MaxUsernameLength {
		return fmt.Errorf("%w: username must be %d-%d characters", ErrInvalidAccount, MinUsernameLength, MaxUsernameLength)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidAccount)
	}
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidAccount, MaxPasswordBytes)
	}
	if role != models.RoleAdmin && role != models.RoleUser {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidAccount, role)
	}
	return nil
}

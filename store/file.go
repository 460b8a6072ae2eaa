// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/malek5552/ramadan-games/models"
)

const (
	DaysFile  = "days.json"
	UsersFile = "users.json"

	FilePermissions = 0644
)

// FileStore keeps each collection in its own JSON file under dir.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) LoadDays(ctx context.Context) ([]models.Day, error) {
	data, err := s.read(DaysFile)
	if err != nil {
		return nil, err
	}
	days, err := decode[models.Day](DaysFile, data)
	if err != nil {
		return nil, err
	}
	return normalizeDays(days), nil
}

func (s *FileStore) ReplaceDays(ctx context.Context, days []models.Day) error {
	data, err := encode(normalizeDays(days))
	if err != nil {
		return fmt.Errorf("failed to encode days: %w", err)
	}
	return s.write(DaysFile, data)
}

func (s *FileStore) LoadUsers(ctx context.Context) ([]models.User, error) {
	data, err := s.read(UsersFile)
	if err != nil {
		return nil, err
	}
	return decode[models.User](UsersFile, data)
}

func (s *FileStore) ReplaceUsers(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	data, err := encode(users)
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	return s.write(UsersFile, data)
}

func (s *FileStore) Close() error {
	return nil
}

// read returns nil data when the file does not exist yet
func (s *FileStore) read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// write replaces name atomically: readers see the old or the new document,
// never a partial one.
func (s *FileStore) write(name string, data []byte) error {
	target := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename succeeded
		os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, FilePermissions); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", name, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}

	slog.Debug("document written", "path", target, "size", humanize.Bytes(uint64(len(data))))
	return nil
}

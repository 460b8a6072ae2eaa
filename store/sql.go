// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/malek5552/ramadan-games/db"
	"github.com/malek5552/ramadan-games/models"
)

// SQLStore keeps each collection as one row of the document table.
type SQLStore struct {
	conn *sql.DB
	docs *db.Documents
}

func NewSQLStore(conn *sql.DB) *SQLStore {
	return &SQLStore{conn: conn, docs: db.NewDocuments(conn)}
}

func (s *SQLStore) LoadDays(ctx context.Context) ([]models.Day, error) {
	payload, _, err := s.docs.Get(ctx, db.DocumentDays)
	if err != nil {
		return nil, err
	}
	days, err := decode[models.Day](db.DocumentDays, payload)
	if err != nil {
		return nil, err
	}
	return normalizeDays(days), nil
}

func (s *SQLStore) ReplaceDays(ctx context.Context, days []models.Day) error {
	data, err := encode(normalizeDays(days))
	if err != nil {
		return fmt.Errorf("failed to encode days: %w", err)
	}
	return s.put(ctx, db.DocumentDays, data)
}

func (s *SQLStore) LoadUsers(ctx context.Context) ([]models.User, error) {
	payload, _, err := s.docs.Get(ctx, db.DocumentUsers)
	if err != nil {
		return nil, err
	}
	return decode[models.User](db.DocumentUsers, payload)
}

func (s *SQLStore) ReplaceUsers(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	data, err := encode(users)
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	return s.put(ctx, db.DocumentUsers, data)
}

func (s *SQLStore) Close() error {
	return s.conn.Close()
}

func (s *SQLStore) put(ctx context.Context, name string, data []byte) error {
	if err := s.docs.Put(ctx, name, data); err != nil {
		return err
	}
	slog.Debug("document written", "name", name, "size", humanize.Bytes(uint64(len(data))))
	return nil
}

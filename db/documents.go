// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Document names
const (
	DocumentDays  = "days"
	DocumentUsers = "users"
)

type Documents struct {
	db *sql.DB
}

func NewDocuments(db *sql.DB) *Documents {
	return &Documents{db: db}
}

// Get returns the payload stored under name. ok is false when no row exists.
func (d *Documents) Get(ctx context.Context, name string) (payload []byte, ok bool, err error) {
	var text string
	err = d.db.QueryRowContext(ctx, `
		SELECT payload FROM document WHERE name = $1
	`, name).Scan(&text)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read document %s: %w", name, err)
	}

	return []byte(text), true, nil
}

// Put replaces the payload stored under name in a single transaction.
func (d *Documents) Put(ctx context.Context, name string, payload []byte) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO document (name, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET payload = excluded.payload, updated_at = excluded.updated_at
	`, name, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write document %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit document %s: %w", name, err)
	}
	return nil
}

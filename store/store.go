// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/malek5552/ramadan-games/cliparse"
	"github.com/malek5552/ramadan-games/db"
	"github.com/malek5552/ramadan-games/models"
)

// Store persists the day and user collections, each as one whole document.
type Store interface {
	LoadDays(ctx context.Context) ([]models.Day, error)
	ReplaceDays(ctx context.Context, days []models.Day) error
	LoadUsers(ctx context.Context) ([]models.User, error)
	ReplaceUsers(ctx context.Context, users []models.User) error
	Close() error
}

// Open returns the backend selected by cfg.Type.
func Open(ctx context.Context, cfg cliparse.StoreConfig) (Store, error) {
	switch cfg.Type {
	case cliparse.StoreJSON:
		return NewFileStore(cfg.DataDir)
	case cliparse.StoreSQLite, cliparse.StorePostgres:
		driver := "sqlite"
		if cfg.Type == cliparse.StorePostgres {
			driver = "postgres"
		}

		conn, err := sql.Open(driver, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		if err := conn.PingContext(ctx); err != nil {
			conn.Close()
			return nil, fmt.Errorf("database ping failed: %w", err)
		}
		if err := db.CreateSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, err
		}
		return NewSQLStore(conn), nil
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.Type)
	}
}

// encode is shared by every backend so the persisted bytes do not depend on
// where they are stored. The output matches JSON.stringify(v, null, 2): no
// HTML escaping and no trailing newline.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func decode[T any](name string, data []byte) ([]T, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("malformed %s document: %w", name, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Votes is always an array in the document, never null.
func normalizeDays(days []models.Day) []models.Day {
	out := make([]models.Day, len(days))
	for i, d := range days {
		if d.Votes == nil {
			d.Votes = []models.Vote{}
		}
		out[i] = d
	}
	return out
}

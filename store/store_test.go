// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/malek5552/ramadan-games/cliparse"
	"github.com/malek5552/ramadan-games/db"
	"github.com/malek5552/ramadan-games/models"
)

func sampleDays() []models.Day {
	at := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	return []models.Day{
		{
			DayNumber: 1, GameName: "Warzone", Time: "11:30 PM", Host: "محمد",
			Notes: "يوم 1 من رمضان", Votes: []models.Vote{}, CreatedAt: models.NewTimestamp(at),
		},
		{
			DayNumber: 10, GameName: "FIFA", Time: "11:30 PM", Host: "أحمد",
			Notes: "special", IsSpecialEvent: true, IsConfirmed: true, CreatedAt: models.NewTimestamp(at),
			Votes: []models.Vote{
				{User: "alice", Vote: models.VoteYes, CreatedAt: models.NewTimestamp(at.Add(time.Minute))},
				{User: "bob", Vote: models.VoteNo, CreatedAt: models.NewTimestamp(at.Add(123 * time.Millisecond))},
			},
		},
	}
}

func sampleUsers() []models.User {
	return []models.User{{
		ID:           "0190b3a8-0000-7000-8000-000000000001",
		Username:     "alice",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         models.RoleAdmin,
		CreatedAt:    models.NewTimestamp(time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC)),
	}}
}

// backends returns every store that can run without external services
func backends(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()

	fileStore, err := Open(ctx, cliparse.StoreConfig{Type: cliparse.StoreJSON, DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open(json) error = %v", err)
	}

	sqliteStore, err := Open(ctx, cliparse.StoreConfig{
		Type:        cliparse.StoreSQLite,
		DatabaseURL: filepath.Join(t.TempDir(), "schedule.db"),
	})
	if err != nil {
		t.Fatalf("Open(sqlite) error = %v", err)
	}

	stores := map[string]Store{"json": fileStore, "sqlite": sqliteStore}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStore_EmptyLoad(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			days, err := s.LoadDays(ctx)
			if err != nil {
				t.Fatalf("LoadDays() error = %v", err)
			}
			if days == nil || len(days) != 0 {
				t.Errorf("Expected empty non-nil days, got %#v", days)
			}

			users, err := s.LoadUsers(ctx)
			if err != nil {
				t.Fatalf("LoadUsers() error = %v", err)
			}
			if len(users) != 0 {
				t.Errorf("Expected no users, got %d", len(users))
			}
		})
	}
}

func TestStore_ReplaceAndLoad(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := s.ReplaceDays(ctx, sampleDays()); err != nil {
				t.Fatalf("ReplaceDays() error = %v", err)
			}
			if err := s.ReplaceUsers(ctx, sampleUsers()); err != nil {
				t.Fatalf("ReplaceUsers() error = %v", err)
			}

			days, err := s.LoadDays(ctx)
			if err != nil {
				t.Fatalf("LoadDays() error = %v", err)
			}
			if diff := cmp.Diff(sampleDays(), days); diff != "" {
				t.Errorf("days mismatch (-want +got):\n%s", diff)
			}

			users, err := s.LoadUsers(ctx)
			if err != nil {
				t.Fatalf("LoadUsers() error = %v", err)
			}
			if diff := cmp.Diff(sampleUsers(), users); diff != "" {
				t.Errorf("users mismatch (-want +got):\n%s", diff)
			}

			// A later replace discards everything before it
			if err := s.ReplaceDays(ctx, sampleDays()[:1]); err != nil {
				t.Fatal(err)
			}
			days, _ = s.LoadDays(ctx)
			if len(days) != 1 {
				t.Errorf("Expected 1 day after replace, got %d", len(days))
			}
		})
	}
}

func TestStore_NilVotesPersistAsEmptyArray(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			input := []models.Day{{DayNumber: 1}}

			if err := s.ReplaceDays(ctx, input); err != nil {
				t.Fatal(err)
			}
			if input[0].Votes != nil {
				t.Error("ReplaceDays modified its input")
			}

			days, _ := s.LoadDays(ctx)
			if days[0].Votes == nil {
				t.Error("Expected empty non-nil votes after load")
			}
		})
	}
}

func TestFileStore_RoundTripIsStable(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	now := time.Now() // local zone, nanoseconds
	days := sampleDays()
	days[0].CreatedAt = models.NewTimestamp(now)

	if err := s.ReplaceDays(ctx, days); err != nil {
		t.Fatal(err)
	}
	first := readFile(t, filepath.Join(s.Dir(), DaysFile))

	for i := 0; i < 3; i++ {
		loaded, err := s.LoadDays(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.ReplaceDays(ctx, loaded); err != nil {
			t.Fatal(err)
		}
	}

	again := readFile(t, filepath.Join(s.Dir(), DaysFile))
	if !bytes.Equal(first, again) {
		t.Errorf("document changed after load/replace:\nbefore:\n%s\nafter:\n%s", first, again)
	}
}

func TestSQLStore_RoundTripIsStable(t *testing.T) {
	s, err := Open(context.Background(), cliparse.StoreConfig{
		Type:        cliparse.StoreSQLite,
		DatabaseURL: filepath.Join(t.TempDir(), "schedule.db"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	ctx := context.Background()
	sqlStore := s.(*SQLStore)

	if err := s.ReplaceDays(ctx, sampleDays()); err != nil {
		t.Fatal(err)
	}
	first, _, _ := sqlStore.docs.Get(ctx, db.DocumentDays)

	loaded, _ := s.LoadDays(ctx)
	if err := s.ReplaceDays(ctx, loaded); err != nil {
		t.Fatal(err)
	}
	again, _, _ := sqlStore.docs.Get(ctx, db.DocumentDays)

	if !bytes.Equal(first, again) {
		t.Errorf("document changed after load/replace:\nbefore:\n%s\nafter:\n%s", first, again)
	}
}

func TestFileStore_MalformedDocument(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, DaysFile), []byte(`[{"dayNumber": 1,`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.LoadDays(context.Background()); err == nil {
		t.Error("Expected error for malformed document")
	}
}

func TestFileStore_EmptyFileIsEmptyCollection(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFileStore(dir)

	if err := os.WriteFile(filepath.Join(dir, UsersFile), []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	users, err := s.LoadUsers(context.Background())
	if err != nil {
		t.Fatalf("LoadUsers() error = %v", err)
	}
	if len(users) != 0 {
		t.Errorf("Expected no users, got %d", len(users))
	}
}

func TestFileStore_LoadsLegacyDocument(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFileStore(dir)

	legacy := `[
  {
    "dayNumber": 3,
    "gameName": "Fortnite",
    "time": "11:30 PM",
    "host": "عبدالله",
    "notes": "يوم 3 من رمضان",
    "isSpecialEvent": false,
    "votes": [
      {"user": "alice", "vote": "yes", "createdAt": "2025-03-03T18:00:00.000Z"}
    ],
    "isConfirmed": false,
    "createdAt": "2025-03-01T12:00:00.000Z",
    "extra": "ignored"
  }
]`
	if err := os.WriteFile(filepath.Join(dir, DaysFile), []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}

	days, err := s.LoadDays(context.Background())
	if err != nil {
		t.Fatalf("LoadDays() error = %v", err)
	}
	if len(days) != 1 || days[0].DayNumber != 3 || days[0].Host != "عبدالله" {
		t.Fatalf("unexpected days: %+v", days)
	}
	if len(days[0].Votes) != 1 || days[0].Votes[0].User != "alice" {
		t.Errorf("unexpected votes: %+v", days[0].Votes)
	}
	wantCreated := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	if !days[0].CreatedAt.Equal(wantCreated) {
		t.Errorf("CreatedAt = %v, want %v", days[0].CreatedAt, wantCreated)
	}
}

// Documents written by JSON.stringify(v, null, 2) must survive a rewrite
// byte for byte.
func TestFileStore_LegacyDocumentRoundTrip(t *testing.T) {
	legacyDays := `[
  {
    "dayNumber": 3,
    "gameName": "Fortnite",
    "time": "11:30 PM",
    "host": "عبدالله",
    "notes": "Tom & Jerry <night> 'vs' \"them\"",
    "isSpecialEvent": false,
    "votes": [
      {
        "user": "alice",
        "vote": "yes",
        "createdAt": "2025-03-03T18:00:00.123Z"
      }
    ],
    "isConfirmed": false,
    "createdAt": "2025-03-01T12:00:00.000Z"
  },
  {
    "dayNumber": 10,
    "gameName": "FIFA",
    "time": "11:30 PM",
    "host": "أحمد",
    "notes": "يوم 10 من رمضان",
    "isSpecialEvent": true,
    "votes": [],
    "isConfirmed": false,
    "createdAt": "2025-03-01T12:00:00.000Z"
  }
]`
	legacyUsers := `[
  {
    "id": "1740830400000",
    "username": "alice",
    "password": "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
    "role": "admin",
    "createdAt": "2025-03-01T12:00:00.000Z"
  }
]`

	dir := t.TempDir()
	s, _ := NewFileStore(dir)
	ctx := context.Background()
	daysPath := filepath.Join(dir, DaysFile)
	usersPath := filepath.Join(dir, UsersFile)

	if err := os.WriteFile(daysPath, []byte(legacyDays), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(usersPath, []byte(legacyUsers), 0644); err != nil {
		t.Fatal(err)
	}

	days, err := s.LoadDays(ctx)
	if err != nil {
		t.Fatalf("LoadDays() error = %v", err)
	}
	if err := s.ReplaceDays(ctx, days); err != nil {
		t.Fatalf("ReplaceDays() error = %v", err)
	}
	users, err := s.LoadUsers(ctx)
	if err != nil {
		t.Fatalf("LoadUsers() error = %v", err)
	}
	if err := s.ReplaceUsers(ctx, users); err != nil {
		t.Fatalf("ReplaceUsers() error = %v", err)
	}

	if got := readFile(t, daysPath); string(got) != legacyDays {
		t.Errorf("days document changed:\nwant:\n%s\ngot:\n%s", legacyDays, got)
	}
	if got := readFile(t, usersPath); string(got) != legacyUsers {
		t.Errorf("users document changed:\nwant:\n%s\ngot:\n%s", legacyUsers, got)
	}
}

func TestTimestampFormat(t *testing.T) {
	riyadh := time.FixedZone("AST", 3*60*60)
	ts := models.NewTimestamp(time.Date(2025, 3, 1, 23, 30, 0, 987654321, riyadh))

	data, err := encode([]models.Vote{{User: "alice", Vote: models.VoteYes, CreatedAt: ts}})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"createdAt": "2025-03-01T20:30:00.987Z"`)) {
		t.Errorf("Expected UTC millisecond timestamp, got:\n%s", data)
	}
	if bytes.HasSuffix(data, []byte("\n")) {
		t.Error("Expected no trailing newline")
	}
}

func TestFileStore_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFileStore(dir)

	for i := 0; i < 3; i++ {
		if err := s.ReplaceDays(context.Background(), sampleDays()); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != DaysFile {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("Expected only %s in data dir, found %v", DaysFile, names)
	}
}

func TestOpen_UnknownType(t *testing.T) {
	if _, err := Open(context.Background(), cliparse.StoreConfig{Type: "mongo"}); err == nil {
		t.Error("Expected error for unknown store type")
	}
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return data
}

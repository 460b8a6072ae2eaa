// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

/*
Package store persists the schedule and the user accounts.

There is no partial update: every write replaces a whole collection. Loading
a collection that was never written returns an empty slice, not an error. A
document that cannot be parsed is an error.

# Backends

	s, err := store.Open(ctx, cfg.Store)

  - json: days.json and users.json in the data directory. Writes go to a
    temp file that is fsynced and renamed over the target.
  - sqlite: document table in a SQLite file (modernc.org/sqlite)
  - postgres: document table in PostgreSQL (lib/pq)

All backends encode with the same two-space indented JSON, so writing back
what was just loaded leaves the stored bytes unchanged.
*/
package store

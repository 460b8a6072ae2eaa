// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

/*
Package db handles the SQL side of persistence.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Tables

  - document: one row per collection (name, payload, updated_at)

The schedule is stored whole, never row by row: the "days" row holds the
complete day collection as JSON and "users" holds the user collection.

# Documents

	docs := db.NewDocuments(conn)
	payload, ok, err := docs.Get(ctx, db.DocumentDays)
	err = docs.Put(ctx, db.DocumentDays, payload)

Put upserts inside a transaction, so readers see either the old or the new
document. The SQL works unchanged on SQLite (modernc.org/sqlite) and
PostgreSQL (lib/pq).
*/
package db

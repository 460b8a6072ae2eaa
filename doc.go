// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

/*
Package main provides the entry point for the Ramadan games API server.

The server keeps a numbered schedule of game nights. Logged-in players vote
yes or no on each day, and a day is confirmed once it collects three yes
votes. Admins generate, edit and delete days.

# Starting the Server

	SESSION_SECRET=... go run .

Or with flags:

	go run . -p 3000 -t sqlite -data ./data -session-secret ...

Variables from a .env file in the working directory are loaded first and
never override the real environment.

# Creating Accounts

The first admin has to be created from the command line:

	go run . create-user -username boss -role admin

The password is prompted twice. Pass -overwrite to reset an existing account.

# Configuration

Required settings:

  - SESSION_SECRET (--session-secret): Secret for session cookie signatures

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - STORE_TYPE (-t): json, sqlite or postgres (default: json)
  - DATA_DIR (-data): Directory for JSON files and the SQLite database (default: data)
  - DATABASE_URL (-d): Database connection string, required for postgres
  - REDIS_URL (-redis): Shares the write lock between processes
  - LOCK_MODE (-lock): local, redis or none (default: redis when REDIS_URL is set, else local)
  - CORS_ORIGINS (-cors-origins): Comma-separated frontend origins allowed to call the API with cookies (default: none)

# Architecture

  - schedule: Voting rules, schedule generation and the locked service
  - store: JSON file and SQL document backends
  - lock: In-process, Redis and no-op locks
  - handlers: HTTP request handlers (days, accounts)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, sessions, JSON helpers
  - auth: Password hashing, signed session tokens, accounts
  - commands: The create-user subcommand
  - models: Domain and request/response types
  - db: SQL schema and document table
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

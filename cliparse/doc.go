// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Call LoadDotEnv first to pick up a .env file:

	cliparse.LoadDotEnv(".env")

# Config Fields

  - Port: Server listen port (default: 3000)
  - Store.Type: json, sqlite or postgres (default: json)
  - Store.DataDir: directory for days.json / users.json (default: data)
  - Store.DatabaseURL: SQLite path or PostgreSQL connection string
  - SessionSecret: Secret for signing session cookies (required)
  - RedisURL: Redis server for a lock shared between processes
  - LockMode: local, redis or none

# CLI Flags

	-p              Server port
	-t              Store type
	-data           Data directory
	-d              Database URL
	-session-secret Session secret
	-redis          Redis URL
	-lock           Lock mode

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	STORE_TYPE     → -t
	DATA_DIR       → -data
	DATABASE_URL   → -d
	SESSION_SECRET → -session-secret
	REDIS_URL      → -redis
	LOCK_MODE      → -lock

CLI flags take precedence over environment variables, and variables already
in the environment take precedence over the .env file.

# Validation

ParseFlags returns an error if:

  - SESSION_SECRET is missing
  - the store is postgres and no DATABASE_URL is given
  - the lock mode is redis and no REDIS_URL is given

The SQLite path defaults to <data>/schedule.db. The lock mode defaults to
redis when REDIS_URL is set and local otherwise.

# Subcommands

ParseCreateUserFlags parses the create-user subcommand, which shares the
store flags:

	ramadan-games create-user -username admin -role admin -t sqlite
*/
package cliparse

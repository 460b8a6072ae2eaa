// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store types
const (
	StoreJSON     = "json"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Lock modes
const (
	LockLocal = "local"
	LockRedis = "redis"
	LockNone  = "none"
)

type StoreConfig struct {
	Type        string
	DataDir     string
	DatabaseURL string
}

type Config struct {
	Port          int
	Store         StoreConfig
	SessionSecret string
	RedisURL      string
	LockMode      string
	CORSOrigins   []string
}

// CreateUserConfig holds the settings of the create-user subcommand.
type CreateUserConfig struct {
	Store     StoreConfig
	Username  string
	Role      string
	Overwrite bool
}

// LoadDotEnv loads variables from the given .env files into the environment
// without overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		err := godotenv.Load(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		slog.Info("Loaded environment file", "path", path)
	}
	return nil
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("ramadan-games", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	bindStoreFlags(fs, &cfg.Store)
	fs.StringVar(&cfg.RedisURL, "redis", "", "Redis URL for a lock shared between processes")
	fs.StringVar(&cfg.LockMode, "lock", "", "Lock mode (local, redis or none)")
	corsOrigins := fs.String("cors-origins", "", "Comma-separated origins allowed to make credentialed cross-origin requests")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session cookie secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3000 // default
		}
	}

	if err := resolveStore(&cfg.Store); err != nil {
		return Config{}, err
	}

	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}

	if cfg.LockMode == "" {
		cfg.LockMode = os.Getenv("LOCK_MODE")
	}
	if cfg.LockMode == "" {
		cfg.LockMode = LockLocal
		if cfg.RedisURL != "" {
			cfg.LockMode = LockRedis
		}
	}
	switch cfg.LockMode {
	case LockLocal, LockNone:
	case LockRedis:
		if cfg.RedisURL == "" {
			return Config{}, errors.New("redis lock requires a Redis URL (use -redis or REDIS_URL env)")
		}
	default:
		return Config{}, fmt.Errorf("unknown lock mode %q", cfg.LockMode)
	}

	if *corsOrigins == "" {
		*corsOrigins = os.Getenv("CORS_ORIGINS")
	}
	cfg.CORSOrigins = splitOrigins(*corsOrigins)

	// Secrets - MUST be provided
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	return cfg, nil
}

// ParseCreateUserFlags parses the arguments of the create-user subcommand.
func ParseCreateUserFlags(args []string) (CreateUserConfig, error) {
	var cfg CreateUserConfig

	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	fs.StringVar(&cfg.Username, "username", "", "Username (prompted when empty)")
	fs.StringVar(&cfg.Role, "role", "admin", "Role (admin or user)")
	fs.BoolVar(&cfg.Overwrite, "overwrite", false, "Reset password and role of an existing user")
	bindStoreFlags(fs, &cfg.Store)

	if err := fs.Parse(args); err != nil {
		return CreateUserConfig{}, err
	}

	if cfg.Role != "admin" && cfg.Role != "user" {
		return CreateUserConfig{}, fmt.Errorf("unknown role %q", cfg.Role)
	}

	if err := resolveStore(&cfg.Store); err != nil {
		return CreateUserConfig{}, err
	}
	return cfg, nil
}

func bindStoreFlags(fs *flag.FlagSet, sc *StoreConfig) {
	fs.StringVar(&sc.Type, "t", "", "Store type (json, sqlite or postgres)")
	fs.StringVar(&sc.DataDir, "data", "", "Data directory")
	fs.StringVar(&sc.DatabaseURL, "d", "", "Database URL")
}

func resolveStore(sc *StoreConfig) error {
	if sc.Type == "" {
		sc.Type = os.Getenv("STORE_TYPE")
		if sc.Type == "" {
			sc.Type = StoreJSON
		}
	}

	if sc.DataDir == "" {
		sc.DataDir = os.Getenv("DATA_DIR")
		if sc.DataDir == "" {
			sc.DataDir = "data"
		}
	}

	if sc.DatabaseURL == "" {
		sc.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	switch sc.Type {
	case StoreJSON:
	case StoreSQLite:
		if sc.DatabaseURL == "" {
			sc.DatabaseURL = filepath.Join(sc.DataDir, "schedule.db")
		}
	case StorePostgres:
		if sc.DatabaseURL == "" {
			return errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	default:
		return fmt.Errorf("unknown store type %q", sc.Type)
	}
	return nil
}

// splitOrigins turns "https://a.example, https://b.example/" into a clean list
func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSuffix(strings.TrimSpace(o), "/")
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/malek5552/ramadan-games/auth"
	"github.com/malek5552/ramadan-games/cliparse"
	"github.com/malek5552/ramadan-games/commands"
	"github.com/malek5552/ramadan-games/lock"
	"github.com/malek5552/ramadan-games/middleware"
	"github.com/malek5552/ramadan-games/router"
	"github.com/malek5552/ramadan-games/schedule"
	"github.com/malek5552/ramadan-games/store"
)

// lockTTL bounds how long a crashed holder can keep a Redis lock
const lockTTL = 10 * time.Second

func main() {
	var err error

	// Subcommands
	if len(os.Args) > 1 && os.Args[1] == "create-user" {
		if err := cliparse.LoadDotEnv(".env"); err != nil {
			slog.Warn("Ignoring .env", "error", err)
		}
		commands.CreateUser(os.Args[2:])
		return
	}

	if err := cliparse.LoadDotEnv(".env"); err != nil {
		slog.Warn("Ignoring .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Open the schedule store
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		slog.Error("store open failed", "type", cfg.Store.Type, "error", err)
		os.Exit(1)
	}
	defer st.Close()
	slog.Info("Store ready", "type", cfg.Store.Type)

	dayLock, userLock, closeLocks, err := newLockers(ctx, cfg)
	if err != nil {
		slog.Error("lock setup failed", "mode", cfg.LockMode, "error", err)
		os.Exit(1)
	}
	defer closeLocks()
	slog.Info("Lock ready", "mode", cfg.LockMode)

	svc := schedule.NewService(st, dayLock)
	accounts := auth.NewAccounts(st, userLock)
	sessions := auth.NewSessionStore(cfg.SessionSecret)

	// Create router
	mux := router.NewRouter(svc, accounts, sessions, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigins, mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// newLockers returns the locks guarding the day and user collections.
func newLockers(ctx context.Context, cfg cliparse.Config) (days, users lock.Locker, closeFn func(), err error) {
	switch cfg.LockMode {
	case cliparse.LockRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, nil, fmt.Errorf("redis ping failed: %w", err)
		}
		closeFn = func() { client.Close() }
		return lock.NewRedis(client, "ramadan-games:lock:days", lockTTL),
			lock.NewRedis(client, "ramadan-games:lock:users", lockTTL),
			closeFn, nil
	case cliparse.LockNone:
		slog.Warn("Running without locks; concurrent writes may be lost")
		return lock.Noop{}, lock.Noop{}, func() {}, nil
	default:
		return lock.NewLocal(), lock.NewLocal(), func() {}, nil
	}
}

// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrNotAcquired = errors.New("lock not acquired")

// Locker serializes load-modify-write sequences. Lock blocks until the lock
// is held or ctx ends; the returned release func must be called exactly once.
type Locker interface {
	Lock(ctx context.Context) (release func(), err error)
}

// Local is an in-process mutex that gives up when the caller's context ends.
type Local struct {
	sem chan struct{}
}

func NewLocal() *Local {
	return &Local{sem: make(chan struct{}, 1)}
}

func (l *Local) Lock(ctx context.Context) (func(), error) {
	select {
	case l.sem <- struct{}{}:
		return func() { <-l.sem }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrNotAcquired, ctx.Err())
	}
}

// Noop never blocks. Concurrent writers race and the last write wins.
type Noop struct{}

func (Noop) Lock(context.Context) (func(), error) {
	return func() {}, nil
}

// releaseScript deletes the key only if it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a lock shared by every process talking to the same Redis server.
// The key expires after ttl so a crashed holder cannot wedge the schedule.
type Redis struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	retry  time.Duration
}

func NewRedis(client *redis.Client, key string, ttl time.Duration) *Redis {
	return &Redis{client: client, key: key, ttl: ttl, retry: 25 * time.Millisecond}
}

func (l *Redis) Lock(ctx context.Context) (func(), error) {
	token := uuid.NewString()

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrNotAcquired, l.key, ctx.Err())
			}
			return nil, fmt.Errorf("failed to acquire %s: %w", l.key, err)
		}
		if ok {
			return func() { l.release(token) }, nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %w", ErrNotAcquired, l.key, ctx.Err())
		}
	}
}

func (l *Redis) release(token string) {
	// Release even if the request context is already gone
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil {
		slog.Error("failed to release lock", "key", l.key, "error", err)
	}
}

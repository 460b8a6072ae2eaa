// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package lock

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestLocal_MutualExclusion(t *testing.T) {
	l := NewLocal()

	var inside atomic.Int32
	var maxInside atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Lock(context.Background())
			if err != nil {
				t.Errorf("Lock() error = %v", err)
				return
			}
			n := inside.Add(1)
			if n > maxInside.Load() {
				maxInside.Store(n)
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
			release()
		}()
	}

	wg.Wait()

	if maxInside.Load() != 1 {
		t.Errorf("Expected at most 1 holder, saw %d", maxInside.Load())
	}
}

func TestLocal_ContextCancelled(t *testing.T) {
	l := NewLocal()

	release, err := l.Lock(context.Background())
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx)
	if !errors.Is(err, ErrNotAcquired) {
		t.Errorf("Expected ErrNotAcquired, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected wrapped DeadlineExceeded, got %v", err)
	}
}

func TestLocal_ReleaseAllowsNextHolder(t *testing.T) {
	l := NewLocal()

	release, err := l.Lock(context.Background())
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	release()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	release, err = l.Lock(ctx)
	if err != nil {
		t.Fatalf("Second Lock() error = %v", err)
	}
	release()
}

func TestNoop(t *testing.T) {
	var l Locker = Noop{}

	r1, err := l.Lock(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	r2, err := l.Lock(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	r1()
	r2()
}

// Runs only when TEST_REDIS_URL points at a disposable Redis server
func TestRedis_MutualExclusion(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("ParseURL() error = %v", err)
	}
	client := redis.NewClient(opts)
	defer client.Close()

	key := "ramadan-games:test:lock"
	client.Del(context.Background(), key)

	l := NewRedis(client, key, 5*time.Second)

	release, err := l.Lock(context.Background())
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if _, err := l.Lock(ctx); !errors.Is(err, ErrNotAcquired) {
		t.Errorf("Expected ErrNotAcquired while held, got %v", err)
	}

	release()

	release, err = l.Lock(context.Background())
	if err != nil {
		t.Fatalf("Lock() after release error = %v", err)
	}
	release()

	if n, _ := client.Exists(context.Background(), key).Result(); n != 0 {
		t.Errorf("Expected key to be deleted after release, exists=%d", n)
	}
}

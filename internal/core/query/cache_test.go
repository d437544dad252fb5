package query

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCache_FreshKeySkipsFetch(t *testing.T) {
	c := New(time.Minute)
	calls := 0
	fetch := func(context.Context) error {
		calls++
		return nil
	}

	if err := c.Do(context.Background(), "users", fetch); err != nil {
		t.Fatalf("do failed: %v", err)
	}
	if err := c.Do(context.Background(), "users", fetch); err != nil {
		t.Fatalf("do failed: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected 1 fetch, got %d", calls)
	}
}

func TestCache_ExpiredKeyRefetches(t *testing.T) {
	c := New(time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	calls := 0
	fetch := func(context.Context) error {
		calls++
		return nil
	}

	_ = c.Do(context.Background(), "users", fetch)
	now = now.Add(2 * time.Minute)
	_ = c.Do(context.Background(), "users", fetch)

	if calls != 2 {
		t.Fatalf("expected refetch after TTL, got %d calls", calls)
	}
}

func TestCache_RetriesOnceThenSucceeds(t *testing.T) {
	c := New(time.Minute)
	calls := 0
	fetch := func(context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("flaky")
		}
		return nil
	}

	if err := c.Do(context.Background(), "roles", fetch); err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected exactly 2 attempts, got %d", calls)
	}
}

func TestCache_TwoFailuresSurfaceError(t *testing.T) {
	c := New(time.Minute)
	calls := 0
	boom := errors.New("down")
	fetch := func(context.Context) error {
		calls++
		return boom
	}

	if err := c.Do(context.Background(), "roles", fetch); !errors.Is(err, boom) {
		t.Fatalf("expected surfaced error, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected exactly 2 attempts, got %d", calls)
	}

	// A failure must not mark the key fresh.
	if err := c.Do(context.Background(), "roles", fetch); !errors.Is(err, boom) {
		t.Fatalf("expected refetch after failure, got %v", err)
	}
	if calls != 4 {
		t.Fatalf("failed fetch marked fresh: %d calls", calls)
	}
}

func TestCache_NoRetryAfterCancel(t *testing.T) {
	c := New(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	fetch := func(context.Context) error {
		calls++
		cancel()
		return ctx.Err()
	}

	if err := c.Do(ctx, "users", fetch); err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1 {
		t.Fatalf("cancelled fetch must not retry, got %d calls", calls)
	}
}

func TestCache_InvalidateForcesRefetch(t *testing.T) {
	c := New(time.Minute)
	calls := 0
	fetch := func(context.Context) error {
		calls++
		return nil
	}

	_ = c.Do(context.Background(), "users", fetch)
	c.Invalidate("users")
	_ = c.Do(context.Background(), "users", fetch)

	if calls != 2 {
		t.Fatalf("invalidate did not force a refetch: %d calls", calls)
	}
}

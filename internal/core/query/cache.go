// Package query tracks freshness of named read queries so list screens do
// not refetch on every render, and applies a single retry to failed reads.
// Mutations never pass through here; they invalidate the affected key
// instead.
package query

import (
	"context"
	"sync"
	"time"
)

const defaultTTL = 30 * time.Second

// Cache remembers when each named query last succeeded.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	fresh map[string]time.Time
}

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{
		ttl:   ttl,
		now:   time.Now,
		fresh: make(map[string]time.Time),
	}
}

// Do runs fetch unless the key is still fresh. A failed fetch is retried
// exactly once before the error is surfaced; a success marks the key fresh
// for the cache TTL.
func (c *Cache) Do(ctx context.Context, key string, fetch func(context.Context) error) error {
	c.mu.Lock()
	at, ok := c.fresh[key]
	c.mu.Unlock()
	if ok && c.now().Sub(at) < c.ttl {
		return nil
	}

	err := fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		err = fetch(ctx)
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.fresh[key] = c.now()
	c.mu.Unlock()
	return nil
}

// Invalidate drops the freshness marks for the given keys, forcing the next
// Do to refetch.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.fresh, key)
	}
}

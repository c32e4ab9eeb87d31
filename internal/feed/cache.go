package feed

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// BuildFunc produces a fresh snapshot from the upstream sources.
type BuildFunc func(ctx context.Context) (*Snapshot, error)

// Cache owns the current snapshot and bounds the rate of upstream fetches.
// While the snapshot is within its TTL it is served without any network
// activity; once empty or expired, the next caller triggers a rebuild and
// every concurrent caller awaits that same in-flight build, observing the
// same outcome. A failed build publishes nothing, so the next caller retries
// from scratch.
//
// The clock is injected so tests can control time without sleeping.
type Cache struct {
	build BuildFunc
	ttl   time.Duration
	now   func() time.Time

	group    singleflight.Group
	mu       sync.RWMutex
	snapshot *Snapshot
}

// NewCache creates a cache around the given build function. A nil clock uses
// time.Now.
func NewCache(build BuildFunc, ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		build: build,
		ttl:   ttl,
		now:   now,
	}
}

// Get returns the current snapshot, rebuilding first when the cache is empty
// or the snapshot has exceeded its TTL.
func (c *Cache) Get(ctx context.Context) (*Snapshot, error) {
	if snap := c.fresh(); snap != nil {
		return snap, nil
	}
	return c.rebuild(ctx, false)
}

// Refresh discards the current snapshot unconditionally and rebuilds,
// regardless of TTL.
func (c *Cache) Refresh(ctx context.Context) (*Snapshot, error) {
	return c.rebuild(ctx, true)
}

// Peek returns the current snapshot without triggering any fetch, even when
// it is stale, or nil when the cache is empty. Used for status reporting.
func (c *Cache) Peek() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// Fresh reports whether the current snapshot is within its TTL.
func (c *Cache) Fresh() bool {
	return c.fresh() != nil
}

func (c *Cache) fresh() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil {
		return nil
	}
	if c.now().Sub(c.snapshot.FetchedAt) >= c.ttl {
		return nil
	}
	return c.snapshot
}

func (c *Cache) rebuild(ctx context.Context, force bool) (*Snapshot, error) {
	v, err, _ := c.group.Do("snapshot", func() (interface{}, error) {
		if force {
			c.mu.Lock()
			c.snapshot = nil
			c.mu.Unlock()
		} else if snap := c.fresh(); snap != nil {
			// A build that finished while this caller queued is fresh
			// enough; do not fetch again.
			return snap, nil
		}

		snap, err := c.build(ctx)
		if err != nil {
			return nil, err
		}
		snap.FetchedAt = c.now()

		c.mu.Lock()
		c.snapshot = snap
		c.mu.Unlock()

		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

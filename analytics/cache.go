package analytics

import (
	"context"
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/rustyeddy/tradejournal/journal"
)

// DefaultCacheSize is the number of reports a Cache keeps when asked for a
// non-positive size.
const DefaultCacheSize = 64

// Cache memoizes reports by snapshot ID and report options. A snapshot's
// trades never change once taken, so entries are never invalidated; old
// snapshots fall out by LRU.
type Cache struct {
	mu  sync.Mutex
	lru *lru.Cache

	// OnHit and OnMiss, when set, are called outside the lock.
	OnHit  func()
	OnMiss func()
}

func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{lru: lru.New(size)}
}

// Report returns the memoized report for (snap, opts), building it on a miss.
// Snapshots without an ID are never cached.
func (c *Cache) Report(ctx context.Context, snap journal.Snapshot, opts ReportOptions) (*Report, error) {
	if snap.ID == "" {
		c.miss()
		return BuildReport(ctx, snap.Trades, opts)
	}

	key := snap.ID + "|" + opts.key()

	c.mu.Lock()
	v, ok := c.lru.Get(key)
	c.mu.Unlock()
	if ok {
		c.hit()
		return v.(*Report), nil
	}

	c.miss()
	r, err := BuildReport(ctx, snap.Trades, opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.lru.Add(key, r)
	c.mu.Unlock()
	return r, nil
}

// Len is the number of cached reports.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Purge drops every cached report.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Clear()
}

func (c *Cache) hit() {
	if c.OnHit != nil {
		c.OnHit()
	}
}

func (c *Cache) miss() {
	if c.OnMiss != nil {
		c.OnMiss()
	}
}

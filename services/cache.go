package services

import (
	"context"
	"sync"
	"time"

	"diettracker/models"
)

// SnapshotTTL is how long a fetched snapshot stays fresh. Writes invalidate
// regardless, so a session always sees its own writes on the next read.
const SnapshotTTL = 60 * time.Second

// SnapshotCache holds the most recent Snapshot and refetches through the
// Store once it goes stale. It replaces the memoization decorator of earlier
// iterations with an explicit object: callers see exactly Get and Invalidate.
type SnapshotCache struct {
	store Store
	now   func() time.Time

	mu   sync.RWMutex
	snap *models.Snapshot
}

func NewSnapshotCache(store Store) *SnapshotCache {
	return &SnapshotCache{store: store, now: time.Now}
}

// Get returns the cached snapshot while it is at most SnapshotTTL old,
// otherwise fetches a fresh one and swaps it in.
func (c *SnapshotCache) Get(ctx context.Context) (*models.Snapshot, error) {
	c.mu.RLock()
	snap := c.snap
	c.mu.RUnlock()

	if snap != nil && c.now().Sub(snap.FetchedAt) <= SnapshotTTL {
		return snap, nil
	}

	fresh, err := c.store.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.snap = fresh
	c.mu.Unlock()
	return fresh, nil
}

// Invalidate forces the next Get to refetch. Called after every successful
// write and on explicit user refresh.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

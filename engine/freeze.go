package engine

import (
	"sync"
	"time"
)

// DisappearanceCache pins, per (train number, scheduled time), the
// instant after which a matched row is hidden regardless of further
// delay updates. Entries are written once and never updated; stale
// entries are harmless but can be swept with Evict.
type DisappearanceCache struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

// NewDisappearanceCache returns an empty cache.
func NewDisappearanceCache() *DisappearanceCache {
	return &DisappearanceCache{entries: map[string]time.Time{}}
}

func freezeKey(trainNumber, scheduledTime string) string {
	return trainNumber + "|" + scheduledTime
}

// Get returns the frozen instant for a slot, if one has been pinned.
func (c *DisappearanceCache) Get(trainNumber, scheduledTime string) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.entries[freezeKey(trainNumber, scheduledTime)]
	return t, ok
}

// SetIfAbsent pins the disappearance instant for a slot unless one is
// already pinned, and returns the effective instant either way.
func (c *DisappearanceCache) SetIfAbsent(trainNumber, scheduledTime string, at time.Time) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := freezeKey(trainNumber, scheduledTime)
	if existing, ok := c.entries[key]; ok {
		return existing
	}
	c.entries[key] = at
	return at
}

// Len returns the number of pinned slots.
func (c *DisappearanceCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Evict removes entries whose frozen instant is before cutoff and
// returns how many were dropped. Entries become irrelevant once the
// associated train has passed, so a periodic sweep keeps the map from
// growing for the life of the process.
func (c *DisappearanceCache) Evict(cutoff time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, t := range c.entries {
		if t.Before(cutoff) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

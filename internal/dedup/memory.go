package dedup

import (
	"context"
	"sync"
	"time"

	"github.com/bookwell-app/booking-api/internal/domain/payment"
)

type memoryEntry struct {
	outcome  *payment.Outcome
	storedAt time.Time
}

// MemoryCache is the default single-process implementation: a mutex-guarded
// map with per-entry TTL. Sweep is expected to run periodically from the
// scheduler wired in main.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryCache) Begin(ctx context.Context, sessionID string) (*payment.Outcome, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[sessionID]; ok && time.Since(e.storedAt) < c.ttl {
		return e.outcome, false, nil
	}

	c.entries[sessionID] = memoryEntry{storedAt: time.Now()}
	return nil, true, nil
}

func (c *MemoryCache) Complete(ctx context.Context, sessionID string, out payment.Outcome) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[sessionID] = memoryEntry{outcome: &out, storedAt: time.Now()}
	return nil
}

func (c *MemoryCache) Forget(ctx context.Context, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, sessionID)
	return nil
}

// Sweep evicts expired entries and returns how many were removed.
func (c *MemoryCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for id, e := range c.entries {
		if time.Since(e.storedAt) >= c.ttl {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}

// Compile-time check
var _ Cache = (*MemoryCache)(nil)

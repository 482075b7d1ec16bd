// Package cache stores the canonical society name list between requests.
// Only raw names are cached; display records are always recomputed.
package cache

import (
	"context"
	"sync"
	"time"
)

// SocietyNameCache holds the list of canonical society names
type SocietyNameCache interface {
	// Get returns the cached names. ok is false on a miss or after expiry.
	Get(ctx context.Context) (names []string, ok bool, err error)

	// Set replaces the cached names
	Set(ctx context.Context, names []string) error

	// Invalidate drops the cached names
	Invalidate(ctx context.Context) error
}

// InMemorySocietyNameCache keeps the names in process memory.
// Suitable for single-instance deployments and tests.
type InMemorySocietyNameCache struct {
	mu        sync.RWMutex
	names     []string
	expiresAt time.Time
	loaded    bool
	ttl       time.Duration
	now       func() time.Time
}

// NewInMemorySocietyNameCache creates a cache whose entries live for ttl.
// A non-positive ttl keeps entries until invalidated.
func NewInMemorySocietyNameCache(ttl time.Duration) *InMemorySocietyNameCache {
	return &InMemorySocietyNameCache{ttl: ttl, now: time.Now}
}

// Get implements SocietyNameCache
func (c *InMemorySocietyNameCache) Get(_ context.Context) ([]string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.loaded {
		return nil, false, nil
	}
	if c.ttl > 0 && !c.now().Before(c.expiresAt) {
		return nil, false, nil
	}
	return cloneNames(c.names), true, nil
}

// Set implements SocietyNameCache
func (c *InMemorySocietyNameCache) Set(_ context.Context, names []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.names = cloneNames(names)
	c.loaded = true
	c.expiresAt = c.now().Add(c.ttl)
	return nil
}

// Invalidate implements SocietyNameCache
func (c *InMemorySocietyNameCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.names = nil
	c.loaded = false
	return nil
}

func cloneNames(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

var _ SocietyNameCache = (*InMemorySocietyNameCache)(nil)

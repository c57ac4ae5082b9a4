package cache

import (
	"context"
	"sync"
	"time"

	"github.com/fitdesk/retention/internal/domain"
)

// MemberExistsCache is a simple in-memory cache for member existence
// checks. avoids hitting the database on every check-in request.
// uses a simple TTL-based expiration strategy.
type MemberExistsCache struct {
	entries map[string]*memberEntry
	mu      sync.RWMutex
	ttl     time.Duration
	repo    domain.MemberRepository
}

type memberEntry struct {
	exists    bool
	expiresAt time.Time
}

// NewMemberExistsCache creates a new member existence cache.
func NewMemberExistsCache(repo domain.MemberRepository, ttl time.Duration) *MemberExistsCache {
	return &MemberExistsCache{
		entries: make(map[string]*memberEntry),
		ttl:     ttl,
		repo:    repo,
	}
}

// MemberExists checks if a member exists. uses the cache if available,
// otherwise queries the database. implements application.MemberChecker.
func (c *MemberExistsCache) MemberExists(ctx context.Context, id domain.MemberID) (bool, error) {
	idStr := id.String()

	// fast path: check cache
	c.mu.RLock()
	entry, ok := c.entries[idStr]
	if ok && time.Now().Before(entry.expiresAt) {
		c.mu.RUnlock()
		return entry.exists, nil
	}
	c.mu.RUnlock()

	// slow path: query database
	exists, err := c.repo.Exists(ctx, id)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	c.entries[idStr] = &memberEntry{
		exists:    exists,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()

	return exists, nil
}

// Invalidate removes a member from the cache.
// call this when a member is created or removed.
func (c *MemberExistsCache) Invalidate(id domain.MemberID) {
	c.mu.Lock()
	delete(c.entries, id.String())
	c.mu.Unlock()
}

// Size returns the current number of cached entries.
func (c *MemberExistsCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Cleanup removes expired entries.
// call this periodically to prevent memory growth.
func (c *MemberExistsCache) Cleanup() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, id)
		}
	}
}

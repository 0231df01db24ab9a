package twinny

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/lifetwin-backend/internal/domain/lifelog"
)

// Cache stores generated narratives. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CacheKey identifies a narrative by user, day and the set of fired triggers.
func CacheKey(userID uuid.UUID, date time.Time, fired []Trigger) string {
	names := make([]string, len(fired))
	for i, t := range fired {
		names[i] = string(t)
	}
	sort.Strings(names)
	return fmt.Sprintf("twinny:narrative:%s:%s:%s", userID, date.UTC().Format(lifelog.DateLayout), strings.Join(names, ","))
}

type memoryItem struct {
	value   []byte
	expires time.Time
}

// MemoryCache is a process local TTL cache used when no Redis is configured.
type MemoryCache struct {
	mu    sync.Mutex
	items map[string]memoryItem
	max   int
	now   func() time.Time
}

// NewMemoryCache keeps at most max entries; expired entries are evicted first.
func NewMemoryCache(max int) *MemoryCache {
	if max <= 0 {
		max = 1024
	}
	return &MemoryCache{items: map[string]memoryItem{}, max: max, now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}
	if !it.expires.IsZero() && !c.now().Before(it.expires) {
		delete(c.items, key)
		return nil, false, nil
	}
	out := make([]byte, len(it.value))
	copy(out, it.value)
	return out, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if _, exists := c.items[key]; !exists && len(c.items) >= c.max {
		c.evictLocked(now)
	}
	it := memoryItem{value: append([]byte(nil), value...)}
	if ttl > 0 {
		it.expires = now.Add(ttl)
	}
	c.items[key] = it
	return nil
}

// evictLocked drops expired entries, then the entry closest to expiry if still full.
func (c *MemoryCache) evictLocked(now time.Time) {
	for k, it := range c.items {
		if !it.expires.IsZero() && !now.Before(it.expires) {
			delete(c.items, k)
		}
	}
	if len(c.items) < c.max {
		return
	}
	var victim string
	var soonest time.Time
	for k, it := range c.items {
		if victim == "" || (!it.expires.IsZero() && (soonest.IsZero() || it.expires.Before(soonest))) {
			victim, soonest = k, it.expires
		}
	}
	delete(c.items, victim)
}

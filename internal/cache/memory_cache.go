package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type cacheItem struct {
	value      []byte
	expiration time.Time
}

// MemoryCache is an in-process Cache with TTL expiry and a soft memory limit.
type MemoryCache struct {
	items         map[string]*cacheItem
	mutex         sync.RWMutex
	maxMemory     int64
	currentMemory int64
	hits          int64
	misses        int64
	evictions     int64
	cleanupDone   chan struct{}
	closed        bool
	now           func() time.Time
}

// NewMemoryCache creates a memory cache and starts its cleanup loop when an
// interval is configured.
func NewMemoryCache(config *CacheConfig) *MemoryCache {
	if config == nil {
		config = DefaultCacheConfig()
	}

	c := &MemoryCache{
		items:       make(map[string]*cacheItem),
		maxMemory:   config.MaxMemory,
		cleanupDone: make(chan struct{}),
		now:         time.Now,
	}

	if config.CleanupInterval > 0 {
		go c.startCleanup(config.CleanupInterval)
	}
	return c
}

// Get retrieves a copy of the stored value
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return nil, ErrCacheDisabled
	}

	item, exists := c.items[key]
	if !exists {
		atomic.AddInt64(&c.misses, 1)
		return nil, ErrKeyNotFound
	}

	if c.now().After(item.expiration) {
		atomic.AddInt64(&c.misses, 1)
		c.remove(key, item)
		return nil, ErrKeyNotFound
	}

	atomic.AddInt64(&c.hits, 1)
	result := make([]byte, len(item.value))
	copy(result, item.value)
	return result, nil
}

// Set stores a copy of value
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return ErrCacheDisabled
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	newItem := &cacheItem{value: valueCopy, expiration: c.now().Add(ttl)}

	if old := c.items[key]; old != nil {
		c.currentMemory -= itemSize(key, old)
	}
	c.items[key] = newItem
	c.currentMemory += itemSize(key, newItem)

	c.evictIfNeeded(key)
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if item, exists := c.items[key]; exists {
		c.remove(key, item)
	}
	return nil
}

// DeletePattern removes all keys matching pattern
func (c *MemoryCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for key, item := range c.items {
		if matchPattern(key, pattern) {
			c.remove(key, item)
		}
	}
	return nil
}

func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.items[key]
	if !exists || c.now().After(item.expiration) {
		return false, nil
	}
	return true, nil
}

// Close stops the cleanup loop and drops every entry. Safe to call twice.
func (c *MemoryCache) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return nil
	}
	close(c.cleanupDone)
	c.items = make(map[string]*cacheItem)
	c.currentMemory = 0
	c.closed = true
	return nil
}

func (c *MemoryCache) Stats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	active := int64(0)
	now := c.now()
	for _, item := range c.items {
		if !now.After(item.expiration) {
			active++
		}
	}

	hits := atomic.LoadInt64(&c.hits)
	misses := atomic.LoadInt64(&c.misses)
	return CacheStats{
		Hits:        hits,
		Misses:      misses,
		HitRatio:    hitRatio(hits, misses),
		Keys:        active,
		MemoryUsage: c.currentMemory,
		Evictions:   atomic.LoadInt64(&c.evictions),
	}
}

func (c *MemoryCache) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupExpired()
		case <-c.cleanupDone:
			return
		}
	}
}

func (c *MemoryCache) cleanupExpired() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	for key, item := range c.items {
		if now.After(item.expiration) {
			c.remove(key, item)
		}
	}
}

// evictIfNeeded drops expired entries first, then entries expiring soonest,
// until usage is back under the limit. keep is never evicted.
func (c *MemoryCache) evictIfNeeded(keep string) {
	if c.maxMemory <= 0 || c.currentMemory <= c.maxMemory {
		return
	}

	now := c.now()
	for key, item := range c.items {
		if key != keep && now.After(item.expiration) {
			c.remove(key, item)
			atomic.AddInt64(&c.evictions, 1)
		}
	}

	for c.currentMemory > c.maxMemory {
		victim := ""
		var victimItem *cacheItem
		for key, item := range c.items {
			if key == keep {
				continue
			}
			if victimItem == nil || item.expiration.Before(victimItem.expiration) {
				victim, victimItem = key, item
			}
		}
		if victimItem == nil {
			return
		}
		c.remove(victim, victimItem)
		atomic.AddInt64(&c.evictions, 1)
	}
}

// remove must be called with the write lock held
func (c *MemoryCache) remove(key string, item *cacheItem) {
	delete(c.items, key)
	c.currentMemory -= itemSize(key, item)
}

// itemSize is a rough estimate: key + value + fixed overhead
func itemSize(key string, item *cacheItem) int64 {
	return int64(len(key) + len(item.value) + 64)
}

func hitRatio(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// matchPattern implements glob matching with the * wildcard only
func matchPattern(text, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return text == pattern
	}

	parts := strings.Split(pattern, "*")
	first, last := parts[0], parts[len(parts)-1]
	if !strings.HasPrefix(text, first) || !strings.HasSuffix(text, last) {
		return false
	}
	if len(text) < len(first)+len(last) {
		return false
	}

	rest := text[len(first) : len(text)-len(last)]
	for _, part := range parts[1 : len(parts)-1] {
		if part == "" {
			continue
		}
		pos := strings.Index(rest, part)
		if pos == -1 {
			return false
		}
		rest = rest[pos+len(part):]
	}
	return true
}

package recurrence

import (
	"slices"
	"sync"
	"time"
)

// CacheConfig holds configuration for the rule cache
type CacheConfig struct {
	TTL             time.Duration // How long entries stay valid
	MaxEntries      int           // Entry count that triggers eviction
	CleanupInterval time.Duration // Sweep period; zero disables the sweeper
}

// DefaultCacheConfig provides sensible defaults for rule caching
var DefaultCacheConfig = CacheConfig{
	TTL:             15 * time.Minute,
	MaxEntries:      1000,
	CleanupInterval: 5 * time.Minute,
}

// CacheStats provides information about cache contents
type CacheStats struct {
	TotalEntries   int
	ExpiredEntries int
	ActiveEntries  int
}

type cacheKey struct {
	operation string
	rule      string
}

type cacheEntry struct {
	result   any
	expires  time.Time
	lastUsed time.Time
}

func (e *cacheEntry) expired(now time.Time) bool {
	return now.After(e.expires)
}

// RuleCache stores results of rule-keyed engine operations with a TTL and
// least-recently-used eviction
type RuleCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]*cacheEntry
	config  CacheConfig

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRuleCache creates a cache and, when config.CleanupInterval is positive,
// starts a goroutine that sweeps expired entries until Close
func NewRuleCache(config CacheConfig) *RuleCache {
	c := &RuleCache{
		entries: make(map[cacheKey]*cacheEntry),
		config:  config,
		stop:    make(chan struct{}),
	}
	if config.CleanupInterval > 0 {
		go c.sweep(config.CleanupInterval)
	}
	return c
}

// Get returns the result stored for (operation, rule). Expired entries are
// dropped on access.
func (c *RuleCache) Get(operation, rule string) (any, bool) {
	key := cacheKey{operation, rule}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if entry.expired(now) {
		delete(c.entries, key)
		return nil, false
	}
	entry.lastUsed = now
	return entry.result, true
}

// Set stores result for (operation, rule), evicting entries if the cache
// grows past MaxEntries
func (c *RuleCache) Set(operation, rule string, result any) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey{operation, rule}] = &cacheEntry{
		result:   result,
		expires:  now.Add(c.config.TTL),
		lastUsed: now,
	}
	if len(c.entries) > c.config.MaxEntries {
		c.removeExpired(now)
		c.evictLeastRecent()
	}
}

// removeExpired must be called with mu held
func (c *RuleCache) removeExpired(now time.Time) {
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
		}
	}
}

// evictLeastRecent must be called with mu held
func (c *RuleCache) evictLeastRecent() {
	excess := len(c.entries) - c.config.MaxEntries
	if excess <= 0 {
		return
	}

	keys := make([]cacheKey, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b cacheKey) int {
		return c.entries[a].lastUsed.Compare(c.entries[b].lastUsed)
	})
	for _, key := range keys[:excess] {
		delete(c.entries, key)
	}
}

func (c *RuleCache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			c.mu.Lock()
			c.removeExpired(now)
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}

// Close stops the sweeper and empties the cache. It is safe to call more
// than once.
func (c *RuleCache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })

	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}

// Stats returns cache statistics
func (c *RuleCache) Stats() CacheStats {
	now := time.Now()

	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := CacheStats{TotalEntries: len(c.entries)}
	for _, entry := range c.entries {
		if entry.expired(now) {
			stats.ExpiredEntries++
		}
	}
	stats.ActiveEntries = stats.TotalEntries - stats.ExpiredEntries
	return stats
}

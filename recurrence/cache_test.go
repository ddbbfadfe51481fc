package recurrence

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestRuleCache_BasicOperations(t *testing.T) {
	cache := NewRuleCache(CacheConfig{
		TTL:             5 * time.Minute,
		MaxEntries:      100,
		CleanupInterval: 1 * time.Minute,
	})
	defer cache.Close()

	// Cache miss first
	result, found := cache.Get("describe", "FREQ=DAILY")
	if found {
		t.Error("Expected cache miss, got hit")
	}
	if result != nil {
		t.Error("Expected nil result on cache miss")
	}

	cache.Set("describe", "FREQ=DAILY", "Every day")

	result, found = cache.Get("describe", "FREQ=DAILY")
	if !found {
		t.Error("Expected cache hit, got miss")
	}
	if result != "Every day" {
		t.Errorf("Expected %q, got %v", "Every day", result)
	}
}

func TestRuleCache_TTLExpiration(t *testing.T) {
	cache := NewRuleCache(CacheConfig{
		TTL:             100 * time.Millisecond,
		MaxEntries:      100,
		CleanupInterval: 50 * time.Millisecond,
	})
	defer cache.Close()

	cache.Set("describe", "weekly", "Every week")

	if _, found := cache.Get("describe", "weekly"); !found {
		t.Error("Expected cache hit immediately after set")
	}

	time.Sleep(150 * time.Millisecond)

	if _, found := cache.Get("describe", "weekly"); found {
		t.Error("Expected cache miss after TTL expiration")
	}
}

func TestRuleCache_OperationsAreSeparate(t *testing.T) {
	cache := NewRuleCache(DefaultCacheConfig)
	defer cache.Close()

	cache.Set("describe", "FREQ=WEEKLY", "Every week")
	cache.Set("normalize", "FREQ=WEEKLY", "FREQ=WEEKLY")

	result1, found1 := cache.Get("describe", "FREQ=WEEKLY")
	result2, found2 := cache.Get("normalize", "FREQ=WEEKLY")

	if !found1 || result1 != "Every week" {
		t.Errorf("Expected describe entry, got %v", result1)
	}
	if !found2 || result2 != "FREQ=WEEKLY" {
		t.Errorf("Expected normalize entry, got %v", result2)
	}
}

func TestRuleCache_KeyBoundary(t *testing.T) {
	cache := NewRuleCache(DefaultCacheConfig)
	defer cache.Close()

	// Operation and rule are separated in the key, so shifting characters
	// between them must not collide
	cache.Set("ab", "c", 1)
	if _, found := cache.Get("a", "bc"); found {
		t.Error("Expected distinct keys for (ab, c) and (a, bc)")
	}
}

func TestRuleCache_Stats(t *testing.T) {
	cache := NewRuleCache(DefaultCacheConfig)
	defer cache.Close()

	stats := cache.Stats()
	if stats.TotalEntries != 0 {
		t.Errorf("Expected 0 initial entries, got %d", stats.TotalEntries)
	}

	for i := 0; i < 5; i++ {
		cache.Set("parse", fmt.Sprintf("every %d days", i+1), true)
	}

	stats = cache.Stats()
	if stats.TotalEntries != 5 {
		t.Errorf("Expected 5 entries, got %d", stats.TotalEntries)
	}
	if stats.ActiveEntries != 5 {
		t.Errorf("Expected 5 active entries, got %d", stats.ActiveEntries)
	}
}

func TestRuleCache_MaxEntriesEviction(t *testing.T) {
	cache := NewRuleCache(CacheConfig{
		TTL:             5 * time.Minute,
		MaxEntries:      3,
		CleanupInterval: 1 * time.Minute,
	})
	defer cache.Close()

	for i := 0; i < 3; i++ {
		cache.Set("describe", fmt.Sprintf("FREQ=DAILY;INTERVAL=%d", i+2), "x")
		time.Sleep(time.Millisecond)
	}

	// Touch the oldest entry so the second one becomes least recently used
	if _, found := cache.Get("describe", "FREQ=DAILY;INTERVAL=2"); !found {
		t.Fatal("Expected first entry to be present")
	}
	time.Sleep(time.Millisecond)

	cache.Set("describe", "FREQ=WEEKLY", "Every week")

	if stats := cache.Stats(); stats.TotalEntries != 3 {
		t.Errorf("Expected 3 entries after eviction, got %d", stats.TotalEntries)
	}
	if _, found := cache.Get("describe", "FREQ=WEEKLY"); !found {
		t.Error("Expected newest entry to be present after eviction")
	}
	if _, found := cache.Get("describe", "FREQ=DAILY;INTERVAL=2"); !found {
		t.Error("Expected recently read entry to survive eviction")
	}
	if _, found := cache.Get("describe", "FREQ=DAILY;INTERVAL=3"); found {
		t.Error("Expected least recently used entry to be evicted")
	}
}

func TestRuleCache_ConcurrentAccess(t *testing.T) {
	cache := NewRuleCache(CacheConfig{
		TTL:             5 * time.Minute,
		MaxEntries:      100,
		CleanupInterval: 1 * time.Minute,
	})
	defer cache.Close()

	const numGoroutines = 10
	const operationsPerGoroutine = 100

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(goroutineID int) {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				rule := fmt.Sprintf("FREQ=DAILY;INTERVAL=%d", goroutineID*operationsPerGoroutine+j)
				if j%2 == 0 {
					cache.Set("describe", rule, rule)
				} else {
					cache.Get("describe", rule)
				}
			}
		}(i)
	}
	wg.Wait()

	cache.Set("describe", "FREQ=YEARLY", "Every year")
	result, found := cache.Get("describe", "FREQ=YEARLY")
	if !found || result != "Every year" {
		t.Error("Cache should still be functional after concurrent access")
	}
	if stats := cache.Stats(); stats.TotalEntries > 100 {
		t.Errorf("Expected at most 100 entries, got %d", stats.TotalEntries)
	}
}

func TestRuleCache_CloseTwice(t *testing.T) {
	cache := NewRuleCache(DefaultCacheConfig)
	cache.Set("describe", "daily", "Every day")

	cache.Close()
	cache.Close()

	if stats := cache.Stats(); stats.TotalEntries != 0 {
		t.Errorf("Expected empty cache after Close, got %d entries", stats.TotalEntries)
	}
}

// Package cache provides a size-bounded TTL cache for ledger reports. It
// lives outside the query engine: the engine stays cache-free and callers opt
// in by wrapping it with the caching decorator.
package cache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type item struct {
	value     interface{}
	expiresAt time.Time
}

// ReportCache is an LRU cache whose entries expire after a fixed TTL.
// Expired entries are dropped lazily on read and eagerly by Sweep, which the
// owner is expected to run on a ticker.
type ReportCache struct {
	mu  sync.Mutex
	lru *lru.Cache[string, item]
	ttl time.Duration
}

// New creates a report cache holding at most size entries, each valid for ttl.
func New(size int, ttl time.Duration) (*ReportCache, error) {
	l, err := lru.New[string, item](size)
	if err != nil {
		return nil, err
	}
	return &ReportCache{lru: l, ttl: ttl}, nil
}

// Get returns the cached value for key, or false when absent or expired.
func (c *ReportCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if time.Now().After(it.expiresAt) {
		c.lru.Remove(key)
		return nil, false
	}
	return it.value, true
}

// Set stores value under key with a fresh TTL.
func (c *ReportCache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Add(key, item{value: value, expiresAt: time.Now().Add(c.ttl)})
}

// Sweep removes every expired entry and reports how many were dropped.
func (c *ReportCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for _, key := range c.lru.Keys() {
		if it, ok := c.lru.Peek(key); ok && now.After(it.expiresAt) {
			c.lru.Remove(key)
			removed++
		}
	}
	return removed
}

// Purge drops every entry.
func (c *ReportCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Purge()
}

// Len returns the number of entries currently held, expired or not.
func (c *ReportCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lru.Len()
}

/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package cache

import (
	"sync"
	"time"
)

// Instance is a simple in-memory cache with a time to live, safe for
// concurrent use. A TTL of 0 disables caching.
type Instance[V any] struct {
	mu    sync.Mutex
	cache map[string]cacheItem[V]
	ttl   time.Duration
	now   func() time.Time
}

type cacheItem[V any] struct {
	value   V
	created time.Time
}

func New[V any](ttl time.Duration) *Instance[V] {
	return &Instance[V]{
		cache: make(map[string]cacheItem[V]),
		ttl:   ttl,
		now:   time.Now}
}

func (c *Instance[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]cacheItem[V])
}

func (c *Instance[V]) Set(key string, value V) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = cacheItem[V]{value: value, created: c.now()}
}

// Get returns the value and true on a valid cache hit
func (c *Instance[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	v, ok := c.cache[key]
	if !ok {
		return zero, false
	}

	// Expiration check
	if c.now().Sub(v.created) > c.ttl {
		delete(c.cache, key)
		return zero, false
	}
	return v.value, true
}

func (c *Instance[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, key)
}

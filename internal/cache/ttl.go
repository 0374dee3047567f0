package cache

import (
	"sync"
	"time"
)

// TTL is an expiring key value store. Entries become invisible once their
// deadline passes and are overwritten by the next Set for the same key.
type TTL[T any] struct {
	mu  sync.RWMutex
	ttl time.Duration
	now func() time.Time
	m   map[string]ttlEntry[T]
}

type ttlEntry[T any] struct {
	value    T
	deadline time.Time
}

func NewTTL[T any](ttl time.Duration) *TTL[T] {
	return &TTL[T]{
		ttl: ttl,
		now: time.Now,
		m:   make(map[string]ttlEntry[T]),
	}
}

// Get returns the cached value for key if it has not expired yet.
func (c *TTL[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.m[key]
	if !ok || c.now().After(e.deadline) {
		var zero T
		return zero, false
	}
	return e.value, true
}

func (c *TTL[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = ttlEntry[T]{
		value:    value,
		deadline: c.now().Add(c.ttl),
	}
}

// Invalidate drops the entry for key, if any.
func (c *TTL[T]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, key)
}

// Flush drops every entry.
func (c *TTL[T]) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[string]ttlEntry[T])
}

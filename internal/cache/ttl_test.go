package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTL(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	c := NewTTL[int](time.Minute)
	c.now = func() time.Time { return now }

	_, ok := c.Get("stats")
	assert.False(t, ok)

	c.Set("stats", 42)
	got, ok := c.Get("stats")
	assert.True(t, ok)
	assert.Equal(t, 42, got)

	// still fresh right at the deadline
	now = now.Add(time.Minute)
	_, ok = c.Get("stats")
	assert.True(t, ok)

	now = now.Add(time.Nanosecond)
	_, ok = c.Get("stats")
	assert.False(t, ok)

	// a new Set starts a fresh window
	c.Set("stats", 7)
	got, ok = c.Get("stats")
	assert.True(t, ok)
	assert.Equal(t, 7, got)

	c.Invalidate("stats")
	_, ok = c.Get("stats")
	assert.False(t, ok)
}

package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Limiter implements a simple in-memory sliding window rate limiter
type Limiter struct {
	mu       sync.RWMutex
	counters map[string]*counter
	window   time.Duration
	max      int
}

type counter struct {
	count     int
	expiresAt time.Time
}

// NewLimiter creates a new rate limiter with the specified window and max requests
func NewLimiter(window time.Duration, max int) *Limiter {
	l := &Limiter{
		counters: make(map[string]*counter),
		window:   window,
		max:      max,
	}
	go l.cleanup()
	return l
}

// Allow checks if a request for the given key is allowed
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		l.counters[key] = &counter{
			count:     1,
			expiresAt: now.Add(l.window),
		}
		return true
	}

	if c.count >= l.max {
		return false
	}

	c.count++
	return true
}

// GetRemaining returns the number of remaining requests for the given key
func (l *Limiter) GetRemaining(key string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	now := time.Now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		return l.max
	}

	remaining := l.max - c.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// cleanup periodically removes expired counters
func (l *Limiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, c := range l.counters {
			if now.After(c.expiresAt) {
				delete(l.counters, key)
			}
		}
		l.mu.Unlock()
	}
}

// OrderLimiter throttles checkout submissions by client IP and phone number.
type OrderLimiter struct {
	ip    *Limiter
	phone *Limiter
}

// NewOrderLimiter creates an order limiter with per-hour limits.
func NewOrderLimiter(ipLimit, phoneLimit int) *OrderLimiter {
	return &OrderLimiter{
		ip:    NewLimiter(time.Hour, ipLimit),
		phone: NewLimiter(time.Hour, phoneLimit),
	}
}

// CheckOrderCreation verifies if an order can be created from the given IP and phone
func (o *OrderLimiter) CheckOrderCreation(ip, phone string) error {
	if !o.ip.Allow(ip) {
		return fmt.Errorf("too many orders from this IP address, please try again later")
	}

	if phone != "" && !o.phone.Allow(phone) {
		return fmt.Errorf("too many orders from this phone number, please try again later")
	}

	return nil
}

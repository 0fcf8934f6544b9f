package mem

import (
	"sync"
	"time"
)

// RateLimiter is an injected, explicitly-scoped TTL store keyed by an
// arbitrary identifier (chat id, ip). It replaces the global mutable map the
// inbound rate limiting used to live in.
type RateLimiter interface {
	// Allow reports whether key may proceed and, when it may, starts a new
	// cooldown window of ttl.
	Allow(key string, ttl time.Duration) bool

	// Sweep drops expired entries. Callers decide when to run it.
	Sweep()
}

type limiterEntry struct {
	expiresAt time.Time
}

type TTLRateLimiter struct {
	mu   sync.Mutex
	data map[string]limiterEntry
}

func NewTTLRateLimiter() *TTLRateLimiter {
	return &TTLRateLimiter{
		data: make(map[string]limiterEntry),
	}
}

func (l *TTLRateLimiter) Allow(key string, ttl time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.data[key]
	if ok && time.Now().Before(e.expiresAt) {
		return false
	}
	l.data[key] = limiterEntry{expiresAt: time.Now().Add(ttl)}
	return true
}

func (l *TTLRateLimiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, e := range l.data {
		if now.After(e.expiresAt) {
			delete(l.data, key)
		}
	}
}

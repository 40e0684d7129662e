package ratelimiter

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// KeyedLimiter allows up to burst attempts per key, refilled evenly over per.
type KeyedLimiter struct {
	limiters map[string]*limiterEntry
	mu       sync.Mutex
	burst    int
	per      time.Duration
	now      func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewKeyedLimiter returns nil when attempts is not positive, which disables limiting.
func NewKeyedLimiter(attempts int, per time.Duration) *KeyedLimiter {
	if attempts <= 0 {
		return nil
	}
	return &KeyedLimiter{
		limiters: make(map[string]*limiterEntry),
		burst:    attempts,
		per:      per,
		now:      time.Now,
	}
}

// Allow reports whether one more attempt for key fits the budget. Keys are
// compared case-insensitively.
func (l *KeyedLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	key = strings.ToLower(strings.TrimSpace(key))
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.limiters[key]
	if !exists {
		entry = &limiterEntry{
			limiter: rate.NewLimiter(rate.Every(l.per/time.Duration(l.burst)), l.burst),
		}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	l.sweep(now)

	return entry.limiter.AllowN(now, 1)
}

// sweep drops keys idle for longer than one full window.
func (l *KeyedLimiter) sweep(now time.Time) {
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > l.per {
			delete(l.limiters, key)
		}
	}
}

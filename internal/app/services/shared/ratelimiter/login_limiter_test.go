package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLimiter(t *testing.T) {
	t.Run("Allows the budget then refuses", func(t *testing.T) {
		limiter := NewKeyedLimiter(3, time.Minute)
		now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
		limiter.now = func() time.Time { return now }

		assert.True(t, limiter.Allow("a@example.com"))
		assert.True(t, limiter.Allow("A@example.com"))
		assert.True(t, limiter.Allow("a@example.com "))
		assert.False(t, limiter.Allow("a@example.com"))

		assert.True(t, limiter.Allow("b@example.com"), "other keys have their own budget")
	})

	t.Run("Budget refills over the window", func(t *testing.T) {
		limiter := NewKeyedLimiter(2, time.Minute)
		now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
		limiter.now = func() time.Time { return now }

		assert.True(t, limiter.Allow("a@example.com"))
		assert.True(t, limiter.Allow("a@example.com"))
		assert.False(t, limiter.Allow("a@example.com"))

		now = now.Add(31 * time.Second)
		assert.True(t, limiter.Allow("a@example.com"))
	})

	t.Run("Disabled limiter allows everything", func(t *testing.T) {
		var limiter *KeyedLimiter = NewKeyedLimiter(0, time.Minute)
		assert.Nil(t, limiter)
		assert.True(t, limiter.Allow("a@example.com"))
	})
}

package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(requestsPerMinute, burst int) (*MemoryRateLimiter, *time.Time) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	limiter := NewMemoryRateLimiter(&Config{
		Enabled:           true,
		RequestsPerMinute: requestsPerMinute,
		BurstSize:         burst,
	})
	limiter.now = func() time.Time { return now }
	return limiter, &now
}

func TestAllowWithinBurst(t *testing.T) {
	limiter, _ := newTestLimiter(60, 3)

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "login")
		assert.True(t, allowed, "request %d", i)
	}

	allowed, retryAfter := limiter.Allow("1.2.3.4", "login")
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestRefillOverTime(t *testing.T) {
	limiter, now := newTestLimiter(60, 2)

	limiter.Allow("client", "login")
	limiter.Allow("client", "login")
	allowed, _ := limiter.Allow("client", "login")
	assert.False(t, allowed)

	// one token per second at 60 rpm
	*now = now.Add(2 * time.Second)
	allowed, _ = limiter.Allow("client", "login")
	assert.True(t, allowed)
}

func TestClientsAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(60, 1)

	allowed, _ := limiter.Allow("a", "login")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("a", "login")
	assert.False(t, allowed)

	allowed, _ = limiter.Allow("b", "login")
	assert.True(t, allowed)
}

func TestDisabledLimiter(t *testing.T) {
	limiter := NewMemoryRateLimiter(&Config{Enabled: false})

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("client", "login")
		assert.True(t, allowed)
	}
}

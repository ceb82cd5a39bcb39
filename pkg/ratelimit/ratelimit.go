// Package ratelimit provides a small in-memory token bucket used to
// throttle the authentication endpoints.
package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

type Config struct {
	Enabled           bool
	RequestsPerMinute int
	BurstSize         int
	CleanupInterval   time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:           true,
		RequestsPerMinute: 30,
		BurstSize:         10,
		CleanupInterval:   10 * time.Minute,
	}
}

type tokenBucket struct {
	tokens     float64
	lastRefill time.Time
}

// MemoryRateLimiter keeps one token bucket per client/endpoint pair.
type MemoryRateLimiter struct {
	config  *Config
	buckets map[string]*tokenBucket
	mu      sync.Mutex
	now     func() time.Time
}

func NewMemoryRateLimiter(config *Config) *MemoryRateLimiter {
	if config == nil {
		config = DefaultConfig()
	}

	limiter := &MemoryRateLimiter{
		config:  config,
		buckets: make(map[string]*tokenBucket),
		now:     time.Now,
	}

	if config.CleanupInterval > 0 {
		go limiter.cleanupLoop()
	}

	return limiter
}

// Allow reports whether the request should pass, and when it should be
// retried if not.
func (r *MemoryRateLimiter) Allow(clientID, endpoint string) (bool, time.Duration) {
	if !r.config.Enabled {
		return true, 0
	}

	key := fmt.Sprintf("%s:%s", clientID, endpoint)
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, ok := r.buckets[key]
	if !ok {
		bucket = &tokenBucket{tokens: float64(r.config.BurstSize), lastRefill: now}
		r.buckets[key] = bucket
	}

	// refill proportionally to elapsed time
	elapsed := now.Sub(bucket.lastRefill)
	bucket.tokens += elapsed.Minutes() * float64(r.config.RequestsPerMinute)
	if bucket.tokens > float64(r.config.BurstSize) {
		bucket.tokens = float64(r.config.BurstSize)
	}
	bucket.lastRefill = now

	if bucket.tokens >= 1 {
		bucket.tokens--
		return true, 0
	}

	retryAfter := time.Duration(float64(time.Minute) * (1 - bucket.tokens) / float64(r.config.RequestsPerMinute))
	return false, retryAfter
}

func (r *MemoryRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(r.config.CleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := r.now().Add(-time.Hour)
		r.mu.Lock()
		for key, bucket := range r.buckets {
			if bucket.lastRefill.Before(cutoff) {
				delete(r.buckets, key)
			}
		}
		r.mu.Unlock()
	}
}

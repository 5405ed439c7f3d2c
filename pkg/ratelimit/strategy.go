package ratelimit

import (
	"time"

	"github.com/go-redis/redis/v8"
)

// Logger is the minimal logging surface the limiters need.
type Logger interface {
	Error(msg string, args ...interface{})
}

// RateLimiter is the strategy interface for request rate limiting.
type RateLimiter interface {
	GetLimitDetails() (int, time.Duration)
	IsLimited(key string) (bool, error)
	Close() error
}

// RateLimitConfig selects and configures the limiter strategy.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	Redis    *redis.Client // optional; nil selects the in-memory limiter
	Logger   Logger        // optional; used for Redis failures
}

// NewRateLimiter returns a Redis-backed sliding-window limiter when a client
// is configured, otherwise a per-key token-bucket limiter suitable for a
// single instance.
func NewRateLimiter(config *RateLimitConfig) RateLimiter {
	if config.Redis != nil {
		return NewRedisRateLimiter(config.Redis, config.Requests, config.Window, config.Logger)
	}

	return NewInMemoryRateLimiter(config.Requests, config.Window)
}

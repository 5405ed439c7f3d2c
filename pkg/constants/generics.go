package constants

import "time"

// RFC 3339 date-time format string, used for all timestamps crossing the
// API boundary.
const RFC3339DateTimeFormat = "2006-01-02T15:04:05Z07:00"

// Pagination windowing bounds. MaxPageSize caps a single listing request so
// one call cannot force a full-table scan; DefaultPageSize applies when the
// caller omits limit.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 1000
)

// Default rate limiting configuration.
const (
	DefaultRateLimitRequests      = 100
	DefaultRateLimitWindowMinutes = 1
)

// DefaultRateLimitWindow returns the default rate limit window duration.
func DefaultRateLimitWindow() time.Duration {
	return time.Duration(DefaultRateLimitWindowMinutes) * time.Minute
}

package ports

import "time"

// RateLimiter bounds submission attempts per source IP. Allow consumes a
// slot when it returns true; an over-limit call consumes nothing and
// reports when the window resets.
type RateLimiter interface {
	Allow(ip string) (allowed bool, retryAfter time.Duration)
}

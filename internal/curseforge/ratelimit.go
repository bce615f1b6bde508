package curseforge

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter is a fixed-window token bucket shared by all requests of a
// client. The window can be pushed back by Retry-After responses.
type RateLimiter struct {
	mu          sync.Mutex
	limit       int
	interval    time.Duration
	tokens      int
	windowStart time.Time
	blockedTill time.Time
	now         func() time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per interval.
// A non-positive limit disables limiting.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:       limit,
		interval:    interval,
		tokens:      limit,
		windowStart: time.Now(),
		now:         time.Now,
	}
}

// Wait blocks until a request may be sent or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		delay := r.reserve()
		if delay <= 0 {
			return nil
		}

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// reserve takes a token and returns 0, or returns how long to wait before
// trying again.
func (r *RateLimiter) reserve() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.limit <= 0 {
		return 0
	}

	now := r.now()
	if now.Before(r.blockedTill) {
		return r.blockedTill.Sub(now)
	}

	if now.Sub(r.windowStart) >= r.interval {
		r.tokens = r.limit
		r.windowStart = now
	}

	if r.tokens <= 0 {
		return r.windowStart.Add(r.interval).Sub(now)
	}

	r.tokens--
	return 0
}

// Observe updates limiter state from response headers.
func (r *RateLimiter) Observe(headers http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if remaining := headers.Get("X-RateLimit-Remaining"); remaining != "" {
		if n, err := strconv.Atoi(remaining); err == nil && n >= 0 && n < r.tokens {
			r.tokens = n
		}
	}

	if retry := headers.Get("Retry-After"); retry != "" {
		if secs, err := strconv.Atoi(retry); err == nil && secs > 0 {
			r.blockedTill = r.now().Add(time.Duration(secs) * time.Second)
		}
	}
}

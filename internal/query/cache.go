// Package query deduplicates, caches and retries catalog requests.
//
// Requests are identified by a Key. At most one call per key is in flight
// at any time; callers asking for a key that is already being fetched wait
// for that call instead of starting another one. Successful results are
// served from memory until they are older than the stale time. A failed
// call is retried at most Retries times before its error is returned as is.
package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultStaleTime is how long a successful result is served from memory.
	DefaultStaleTime = 5 * time.Minute

	// DefaultRetries is the number of automatic retries after a failure.
	DefaultRetries = 1

	// MaxRetries caps Retries; no request is retried more than once.
	MaxRetries = 1

	// DefaultCapacity is the default number of cached results.
	DefaultCapacity = 256

	// DefaultRetryDelay is the pause before the retry.
	DefaultRetryDelay = time.Second
)

// Config holds cache configuration.
type Config struct {
	StaleTime  time.Duration
	Retries    int
	Capacity   int
	RetryDelay time.Duration

	// ShouldRetry reports whether a failed call may be retried. Context
	// errors are never retried regardless of this function.
	ShouldRetry func(error) bool
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	return Config{
		StaleTime:  DefaultStaleTime,
		Retries:    DefaultRetries,
		Capacity:   DefaultCapacity,
		RetryDelay: DefaultRetryDelay,
	}
}

// Cache is a keyed request cache safe for concurrent use.
type Cache struct {
	mu          sync.Mutex
	staleTime   time.Duration
	retries     int
	retryDelay  time.Duration
	shouldRetry func(error) bool
	entries     *store
	inflight    map[Key]*flight
	now         func() time.Time
}

// flight is one pending call shared by every caller of its key.
type flight struct {
	id    string
	done  chan struct{}
	value any
	err   error
}

// NewCache creates a cache. A non-positive StaleTime or Capacity falls back
// to the default; Retries is clamped to [0, MaxRetries].
func NewCache(cfg Config) *Cache {
	if cfg.StaleTime <= 0 {
		cfg.StaleTime = DefaultStaleTime
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.Retries > MaxRetries {
		cfg.Retries = MaxRetries
	}
	if cfg.RetryDelay < 0 {
		cfg.RetryDelay = 0
	}

	return &Cache{
		staleTime:   cfg.StaleTime,
		retries:     cfg.Retries,
		retryDelay:  cfg.RetryDelay,
		shouldRetry: cfg.ShouldRetry,
		entries:     newStore(cfg.Capacity),
		inflight:    make(map[Key]*flight),
		now:         time.Now,
	}
}

// Fetch returns the result for key, calling fn only when no fresh result is
// cached and no call for key is already in flight.
//
// fn runs detached from ctx: when ctx ends first, Fetch returns ctx.Err()
// and the call carries on in the background so its result still reaches
// the cache. The abandoning caller never sees that result.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	value, err := c.do(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}

	result, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("query: cached value for %s has type %T", key, value)
	}
	return result, nil
}

func (c *Cache) do(ctx context.Context, key Key, fn func(context.Context) (any, error)) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if item, ok := c.entries.get(key); ok && c.now().Sub(item.fetchedAt) < c.staleTime {
		c.mu.Unlock()
		slog.Debug("query cache hit", "key", key.String())
		return item.value, nil
	}

	f, joined := c.inflight[key]
	if !joined {
		f = &flight{id: uuid.New().String(), done: make(chan struct{})}
		c.inflight[key] = f
		go c.run(context.WithoutCancel(ctx), key, f, fn)
	}
	c.mu.Unlock()

	if joined {
		slog.Debug("joining in-flight query", "flight", f.id, "key", key.String())
	}

	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		slog.Debug("caller abandoned query", "flight", f.id, "key", key.String())
		return nil, ctx.Err()
	}
}

// run executes a flight and publishes its outcome.
func (c *Cache) run(ctx context.Context, key Key, f *flight, fn func(context.Context) (any, error)) {
	started := c.now()
	slog.Debug("query started", "flight", f.id, "key", key.String())

	value, err := c.attempt(ctx, key, f.id, fn)

	c.mu.Lock()
	f.value, f.err = value, err
	if err == nil {
		c.entries.set(key, value, c.now())
	}
	delete(c.inflight, key)
	c.mu.Unlock()

	if err != nil {
		slog.Debug("query failed", "flight", f.id, "key", key.String(), "error", err)
	} else {
		slog.Debug("query completed", "flight", f.id, "key", key.String(), "duration", c.now().Sub(started))
	}

	close(f.done)
}

// attempt calls fn, retrying a retryable failure up to c.retries times.
// The last error is returned unwrapped so its message reaches the caller.
func (c *Cache) attempt(ctx context.Context, key Key, id string, fn func(context.Context) (any, error)) (any, error) {
	for n := 0; ; n++ {
		value, err := fn(ctx)
		if err == nil {
			return value, nil
		}
		if n >= c.retries || !c.retryable(err) {
			return nil, err
		}

		slog.Debug("retrying query",
			"flight", id,
			"key", key.String(),
			"attempt", n+2,
			"error", err)

		if c.retryDelay > 0 {
			time.Sleep(c.retryDelay)
		}
	}
}

func (c *Cache) retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if c.shouldRetry != nil {
		return c.shouldRetry(err)
	}
	return true
}

// Invalidate drops the cached result for key. A flight in progress is not
// affected.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.remove(key)
}

// Clear removes all cached results.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.clear()
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries.len()
}

// inFlight returns the number of calls currently running.
func (c *Cache) inFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.inflight)
}

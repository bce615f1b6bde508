package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(t *testing.T, cfg Config) (*Cache, *fakeClock) {
	t.Helper()
	cfg.RetryDelay = 0
	cache := NewCache(cfg)
	clock := newFakeClock()
	cache.now = clock.Now
	return cache, clock
}

var gamesKey = Key{Credential: "secret", Kind: KindGames, Index: 40, PageSize: 20}

func TestNewCache(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantStale   time.Duration
		wantRetries int
		wantCap     int
	}{
		{
			name:        "zero config",
			cfg:         Config{},
			wantStale:   DefaultStaleTime,
			wantRetries: 0,
			wantCap:     DefaultCapacity,
		},
		{
			name:        "defaults",
			cfg:         DefaultConfig(),
			wantStale:   5 * time.Minute,
			wantRetries: 1,
			wantCap:     DefaultCapacity,
		},
		{
			name:        "retries clamped",
			cfg:         Config{StaleTime: time.Minute, Retries: 5, Capacity: 3},
			wantStale:   time.Minute,
			wantRetries: MaxRetries,
			wantCap:     3,
		},
		{
			name:        "negative retries",
			cfg:         Config{Retries: -1},
			wantStale:   DefaultStaleTime,
			wantRetries: 0,
			wantCap:     DefaultCapacity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewCache(tt.cfg)
			assert.Equal(t, tt.wantStale, cache.staleTime)
			assert.Equal(t, tt.wantRetries, cache.retries)
			assert.Equal(t, tt.wantCap, cache.entries.capacity)
			assert.Equal(t, 0, cache.Len())
		})
	}
}

func TestFetch_CachesWithinStaleTime(t *testing.T) {
	cache, clock := newTestCache(t, DefaultConfig())
	var calls atomic.Int32
	fn := func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "games", nil
	}

	got, err := Fetch(context.Background(), cache, gamesKey, fn)
	require.NoError(t, err)
	assert.Equal(t, "games", got)

	clock.Advance(4 * time.Minute)
	got, err = Fetch(context.Background(), cache, gamesKey, fn)
	require.NoError(t, err)
	assert.Equal(t, "games", got)
	assert.Equal(t, int32(1), calls.Load())

	clock.Advance(time.Minute)
	_, err = Fetch(context.Background(), cache, gamesKey, fn)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "stale result must be refetched")
}

func TestFetch_DistinctKeys(t *testing.T) {
	cache, _ := newTestCache(t, DefaultConfig())
	var calls atomic.Int32
	fn := func(ctx context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}

	keys := []Key{
		gamesKey,
		{Credential: "other", Kind: KindGames, Index: 40, PageSize: 20},
		{Credential: "secret", Kind: KindGames, Index: 0, PageSize: 20},
		{Credential: "secret", Kind: KindModSearch, ID: 432, SearchFilter: "jei", PageSize: 20},
		{Credential: "secret", Kind: KindModSearch, ID: 432, SearchFilter: "jei", SortOrder: "asc", PageSize: 20},
	}
	for _, key := range keys {
		_, err := Fetch(context.Background(), cache, key, fn)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(len(keys)), calls.Load())
	assert.Equal(t, len(keys), cache.Len())
}

func TestFetch_DeduplicatesConcurrentCallers(t *testing.T) {
	cache, _ := newTestCache(t, DefaultConfig())

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	fn := func(ctx context.Context) (string, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return "shared", nil
	}

	const callers = 8
	results := make([]string, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = Fetch(context.Background(), cache, gamesKey, fn)
	}()
	<-started

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = Fetch(context.Background(), cache, gamesKey, fn)
		}(i)
	}

	require.Eventually(t, func() bool { return cache.inFlight() == 1 }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", results[i])
	}
	assert.Equal(t, 0, cache.inFlight())
}

func TestFetch_RetriesOnce(t *testing.T) {
	cache, _ := newTestCache(t, DefaultConfig())
	var calls atomic.Int32

	got, err := Fetch(context.Background(), cache, gamesKey, func(ctx context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "", errors.New("connection reset by peer")
		}
		return "recovered", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "recovered", got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetch_SurfacesErrorAfterRetry(t *testing.T) {
	cache, _ := newTestCache(t, DefaultConfig())
	var calls atomic.Int32
	upstream := errors.New("curseforge API error (status 500): boom")

	_, err := Fetch(context.Background(), cache, gamesKey, func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "", upstream
	})

	require.Error(t, err)
	assert.Same(t, upstream, err)
	assert.Equal(t, "curseforge API error (status 500): boom", err.Error())
	assert.Equal(t, int32(2), calls.Load(), "one call plus exactly one retry")

	// Failures are not cached.
	_, err = Fetch(context.Background(), cache, gamesKey, func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetch_NoRetryWhenNotRetryable(t *testing.T) {
	errBadInput := errors.New("bad input")
	cfg := DefaultConfig()
	cfg.ShouldRetry = func(err error) bool { return !errors.Is(err, errBadInput) }
	cache, _ := newTestCache(t, cfg)

	var calls atomic.Int32
	_, err := Fetch(context.Background(), cache, gamesKey, func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "", errBadInput
	})

	assert.ErrorIs(t, err, errBadInput)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_NoRetryOnContextError(t *testing.T) {
	cache, _ := newTestCache(t, DefaultConfig())
	var calls atomic.Int32

	_, err := Fetch(context.Background(), cache, gamesKey, func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "", context.DeadlineExceeded
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_AbandonedCallerDiscardsResult(t *testing.T) {
	cache, _ := newTestCache(t, DefaultConfig())

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	fn := func(ctx context.Context) (string, error) {
		calls.Add(1)
		close(started)
		<-release
		assert.NoError(t, ctx.Err(), "flight must not see the caller's cancellation")
		return "late", nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		got, err := Fetch(ctx, cache, gamesKey, fn)
		assert.Empty(t, got)
		done <- err
	}()

	<-started
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(release)
	require.Eventually(t, func() bool { return cache.Len() == 1 }, time.Second, time.Millisecond)

	got, err := Fetch(context.Background(), cache, gamesKey, func(ctx context.Context) (string, error) {
		t.Error("result should have been cached by the abandoned flight")
		return "", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "late", got)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_CancelledBeforeStart(t *testing.T) {
	cache, _ := newTestCache(t, DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Fetch(ctx, cache, gamesKey, func(ctx context.Context) (string, error) {
		t.Error("fn must not run")
		return "", nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, cache.inFlight())
}

func TestFetch_NilPointerResult(t *testing.T) {
	type entity struct{ ID int }
	cache, _ := newTestCache(t, DefaultConfig())
	var calls atomic.Int32
	fn := func(ctx context.Context) (*entity, error) {
		calls.Add(1)
		return nil, nil
	}

	got, err := Fetch(context.Background(), cache, gamesKey, fn)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = Fetch(context.Background(), cache, gamesKey, fn)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, int32(1), calls.Load(), "an absent entity is a cached success")
}

func TestFetch_TypeMismatch(t *testing.T) {
	cache, _ := newTestCache(t, DefaultConfig())

	_, err := Fetch(context.Background(), cache, gamesKey, func(ctx context.Context) (string, error) {
		return "text", nil
	})
	require.NoError(t, err)

	_, err = Fetch(context.Background(), cache, gamesKey, func(ctx context.Context) (int, error) {
		return 1, nil
	})
	assert.Error(t, err)
}

func TestCache_Eviction(t *testing.T) {
	cache, _ := newTestCache(t, Config{Capacity: 2})
	fetch := func(key Key) {
		_, err := Fetch(context.Background(), cache, key, func(ctx context.Context) (int, error) {
			return key.Index, nil
		})
		require.NoError(t, err)
	}

	k1 := Key{Kind: KindGames, Index: 0, PageSize: 20}
	k2 := Key{Kind: KindGames, Index: 20, PageSize: 20}
	k3 := Key{Kind: KindGames, Index: 40, PageSize: 20}

	fetch(k1)
	fetch(k2)
	fetch(k1) // k1 becomes most recently used
	fetch(k3)

	assert.Equal(t, 2, cache.Len())
	_, ok := cache.entries.get(k2)
	assert.False(t, ok, "least recently used key should be evicted")
	_, ok = cache.entries.get(k1)
	assert.True(t, ok)
}

func TestCache_InvalidateAndClear(t *testing.T) {
	cache, _ := newTestCache(t, DefaultConfig())
	var calls atomic.Int32
	fn := func(ctx context.Context) (int, error) { return int(calls.Add(1)), nil }

	_, err := Fetch(context.Background(), cache, gamesKey, fn)
	require.NoError(t, err)

	cache.Invalidate(gamesKey)
	got, err := Fetch(context.Background(), cache, gamesKey, fn)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}

func TestKey_String(t *testing.T) {
	key := Key{
		Credential:   "super-secret",
		Kind:         KindModSearch,
		ID:           432,
		SearchFilter: "jei",
		SortField:    2,
		SortOrder:    "desc",
		Index:        40,
		PageSize:     20,
	}

	s := key.String()
	assert.NotContains(t, s, "super-secret")
	assert.Equal(t, `mod-search/432 filter="jei" sort=2 order=desc index=40 size=20`, s)
	assert.Equal(t, "game/7", Key{Kind: KindGame, ID: 7}.String())
}

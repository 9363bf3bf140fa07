package swr

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

// newTestCache returns a cache with a controllable clock and a janitor
// that never fires on its own during the test.
func newTestCache(t *testing.T, opts Options) (*Cache[string], *time.Time) {
	t.Helper()
	if opts.SweepEvery == 0 {
		opts.SweepEvery = time.Hour
	}
	if opts.RetryBase == 0 {
		opts.RetryBase = time.Millisecond
	}
	c := New[string](opts)
	t.Cleanup(c.Close)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.mu.Lock()
	c.now = func() time.Time { return now }
	c.mu.Unlock()
	return c, &now
}

func TestGetCachesWithinFreshnessWindow(t *testing.T) {
	c, _ := newTestCache(t, Options{FreshFor: 5 * time.Minute})

	loader := func(ctx context.Context) (string, error) { return "posts-v1", nil }

	for i := 0; i < 5; i++ {
		val, err := c.Get(context.Background(), "posts", loader)
		require.NoError(t, err)
		assert.Equal(t, "posts-v1", val)
	}

	assert.Equal(t, int64(1), c.Loads(), "repeated reads inside the freshness window must not hit the loader")
}

func TestStaleServedWhileRefreshing(t *testing.T) {
	c, now := newTestCache(t, Options{FreshFor: 5 * time.Minute})

	var calls atomic.Int64
	refreshed := make(chan struct{})
	loader := func(ctx context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "v1", nil
		}
		defer close(refreshed)
		return "v2", nil
	}

	val, err := c.Get(context.Background(), "posts", loader)
	require.NoError(t, err)
	require.Equal(t, "v1", val)

	*now = now.Add(6 * time.Minute)

	// Past the window: the stale value comes back synchronously while the
	// refresh runs in the background.
	val, err = c.Get(context.Background(), "posts", loader)
	require.NoError(t, err)
	assert.Equal(t, "v1", val)

	select {
	case <-refreshed:
	case <-time.After(2 * time.Second):
		t.Fatal("background refresh never ran")
	}
	// The refresh goroutine may still hold the value; wait for it to land.
	require.Eventually(t, func() bool {
		v, err := c.Get(context.Background(), "posts", loader)
		return err == nil && v == "v2"
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, int64(2), c.Loads(), "expiry must trigger exactly one extra load")
}

func TestConcurrentFirstLoadsShareOneCall(t *testing.T) {
	c, _ := newTestCache(t, Options{FreshFor: 5 * time.Minute})

	release := make(chan struct{})
	loader := func(ctx context.Context) (string, error) {
		<-release
		return "shared", nil
	}

	const readers = 8
	var wg sync.WaitGroup
	results := make([]string, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			val, err := c.Get(context.Background(), "posts", loader)
			require.NoError(t, err)
			results[i] = val
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, val := range results {
		assert.Equal(t, "shared", val)
	}
	assert.Equal(t, int64(1), c.Loads())
}

func TestLoadRetriesWithBackoff(t *testing.T) {
	c, _ := newTestCache(t, Options{FreshFor: time.Minute, MaxRetries: 2})

	var calls atomic.Int64
	loader := func(ctx context.Context) (string, error) {
		if calls.Add(1) < 3 {
			return "", errors.New("backend unavailable")
		}
		return "recovered", nil
	}

	val, err := c.Get(context.Background(), "posts", loader)
	require.NoError(t, err)
	assert.Equal(t, "recovered", val)
	assert.Equal(t, int64(3), c.Loads())
}

func TestLoadFailureSurfacesLastErrorAndIsNotCached(t *testing.T) {
	c, _ := newTestCache(t, Options{FreshFor: time.Minute, MaxRetries: 2})

	wantErr := errors.New("backend down")
	loader := func(ctx context.Context) (string, error) { return "", wantErr }

	_, err := c.Get(context.Background(), "posts", loader)
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, int64(3), c.Loads(), "1 attempt + 2 retries")

	// The failed placeholder must not stick around.
	assert.Equal(t, 0, c.Len())
	_, err = c.Get(context.Background(), "posts", loader)
	require.Error(t, err)
	assert.Equal(t, int64(6), c.Loads())
}

func TestInvalidateDiscardsInFlightRefresh(t *testing.T) {
	c, now := newTestCache(t, Options{FreshFor: time.Minute})

	var calls atomic.Int64
	inRefresh := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	loader := func(ctx context.Context) (string, error) {
		switch calls.Add(1) {
		case 1:
			return "v1", nil
		case 2:
			close(inRefresh)
			<-release
			defer close(done)
			return "superseded", nil
		default:
			return "v3", nil
		}
	}

	_, err := c.Get(context.Background(), "posts", loader)
	require.NoError(t, err)

	*now = now.Add(2 * time.Minute)
	val, err := c.Get(context.Background(), "posts", loader)
	require.NoError(t, err)
	require.Equal(t, "v1", val)

	<-inRefresh
	c.Invalidate("posts")
	close(release)
	<-done

	// The superseded refresh result must never become visible.
	val, err = c.Get(context.Background(), "posts", loader)
	require.NoError(t, err)
	assert.Equal(t, "v3", val)
}

func TestSweepEvictsIdleEntries(t *testing.T) {
	c, now := newTestCache(t, Options{FreshFor: time.Minute, IdleTTL: 10 * time.Minute})

	loader := func(ctx context.Context) (string, error) { return "v1", nil }
	_, err := c.Get(context.Background(), "posts", loader)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	*now = now.Add(9 * time.Minute)
	c.sweep()
	assert.Equal(t, 1, c.Len(), "entry read 9m ago must survive a 10m idle TTL")

	*now = now.Add(2 * time.Minute)
	c.sweep()
	assert.Equal(t, 0, c.Len())
}

func TestInvalidatePrefix(t *testing.T) {
	c, _ := newTestCache(t, Options{FreshFor: time.Minute})

	loader := func(ctx context.Context) (string, error) { return "v", nil }
	for _, key := range []string{"posts:a", "posts:b", "comments:a"} {
		_, err := c.Get(context.Background(), key, loader)
		require.NoError(t, err)
	}

	c.InvalidatePrefix("posts:")
	assert.Equal(t, 1, c.Len())
}

func TestKeyBuildsCompositeKeys(t *testing.T) {
	type filter struct {
		CategoryID string `json:"category_id,omitempty"`
		Page       int    `json:"page"`
	}

	assert.Equal(t, "posts", Key("posts", nil))
	assert.Equal(t, Key("posts", filter{Page: 1}), Key("posts", filter{Page: 1}))
	assert.NotEqual(t, Key("posts", filter{Page: 1}), Key("posts", filter{Page: 2}))
	assert.NotEqual(t, Key("posts", filter{Page: 1}), Key("comments", filter{Page: 1}))
}

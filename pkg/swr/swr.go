package swr

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"tattoo-backend/pkg/logger"
)

// LoaderFunc fetches a fresh value for a key (one backend round trip).
type LoaderFunc[V any] func(ctx context.Context) (V, error)

// Options configures a Cache.
type Options struct {
	// FreshFor is the freshness window. Reads inside it never hit the loader.
	FreshFor time.Duration
	// IdleTTL evicts entries not read for this long. Idle-based, not size-based.
	IdleTTL time.Duration
	// MaxRetries is the number of extra loader attempts after a failure.
	MaxRetries int
	// RetryBase is the first retry delay. Doubles per attempt, capped at RetryCap.
	RetryBase time.Duration
	RetryCap  time.Duration
	// SweepEvery is the janitor interval.
	SweepEvery time.Duration
}

func (o Options) withDefaults() Options {
	if o.FreshFor <= 0 {
		o.FreshFor = 5 * time.Minute
	}
	if o.IdleTTL <= 0 {
		o.IdleTTL = 10 * time.Minute
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	} else if o.MaxRetries == 0 {
		o.MaxRetries = 2
	}
	if o.RetryBase <= 0 {
		o.RetryBase = 500 * time.Millisecond
	}
	if o.RetryCap <= 0 {
		o.RetryCap = 10 * time.Second
	}
	if o.SweepEvery <= 0 {
		o.SweepEvery = time.Minute
	}
	return o
}

type entry[V any] struct {
	gen        uint64
	val        V
	hasValue   bool
	fetchedAt  time.Time
	lastAccess time.Time
	refreshing bool
	loading    chan struct{} // non-nil while the first load is in flight
	loadErr    error
}

// Cache is a keyed stale-while-revalidate loader cache.
//
// A miss loads synchronously (concurrent callers for the same key share
// one load). A fresh hit returns the cached value without calling the
// loader. A stale hit returns the cached value immediately and refreshes
// in the background; if the refresh fails after retries, the stale value
// keeps being served. Entries a refresh would overwrite are discarded
// when the entry was invalidated while the refresh was in flight.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]*entry[V]
	opts    Options
	loads   atomic.Int64
	now     func() time.Time
	done    chan struct{}
	closed  bool
}

// New creates a Cache and starts its eviction janitor.
// The owner must call Close when done.
func New[V any](opts Options) *Cache[V] {
	c := &Cache[V]{
		entries: make(map[string]*entry[V]),
		opts:    opts.withDefaults(),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Key builds the composite cache key: entity name + serialized filter.
func Key(entity string, filter interface{}) string {
	if filter == nil {
		return entity
	}
	b, err := json.Marshal(filter)
	if err != nil {
		// Filters are plain structs; this only fires on programmer error.
		return fmt.Sprintf("%s:%+v", entity, filter)
	}
	return entity + ":" + string(b)
}

// Get returns the value for key, loading it if needed.
func (c *Cache[V]) Get(ctx context.Context, key string, loader LoaderFunc[V]) (V, error) {
	var zero V

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return zero, fmt.Errorf("swr: cache is closed")
	}

	e, ok := c.entries[key]
	if !ok {
		// Miss: this caller performs the load, later callers wait on it.
		e = &entry[V]{
			loading:    make(chan struct{}),
			lastAccess: c.now(),
		}
		c.entries[key] = e
		c.mu.Unlock()
		return c.firstLoad(ctx, key, e, loader)
	}

	e.lastAccess = c.now()

	if e.loading != nil {
		// First load in flight: wait for it instead of duplicating the call.
		ch := e.loading
		c.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return zero, ctx.Err()
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if e.hasValue {
			return e.val, nil
		}
		return zero, e.loadErr
	}

	age := c.now().Sub(e.fetchedAt)
	if age < c.opts.FreshFor {
		val := e.val
		c.mu.Unlock()
		return val, nil
	}

	// Stale: serve the cached value now, refresh in the background.
	if !e.refreshing {
		e.refreshing = true
		gen := e.gen
		go c.refresh(key, e, gen, loader)
	}
	val := e.val
	c.mu.Unlock()
	return val, nil
}

// Invalidate drops a key. A refresh already in flight for it is discarded.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		e.gen++
		delete(c.entries, key)
	}
	c.mu.Unlock()
}

// InvalidatePrefix drops every key starting with prefix.
func (c *Cache[V]) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	for key, e := range c.entries {
		if strings.HasPrefix(key, prefix) {
			e.gen++
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

// Loads returns the total number of loader invocations, retries included.
func (c *Cache[V]) Loads() int64 {
	return c.loads.Load()
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close stops the janitor and drops all entries.
func (c *Cache[V]) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.done)
		c.entries = make(map[string]*entry[V])
	}
	c.mu.Unlock()
}

func (c *Cache[V]) firstLoad(ctx context.Context, key string, e *entry[V], loader LoaderFunc[V]) (V, error) {
	val, err := c.load(ctx, loader)

	c.mu.Lock()
	defer func() {
		close(e.loading)
		e.loading = nil
		c.mu.Unlock()
	}()

	if err != nil {
		// Drop the placeholder so the next Get retries from scratch.
		e.loadErr = err
		if cur, ok := c.entries[key]; ok && cur == e {
			delete(c.entries, key)
		}
		var zero V
		return zero, err
	}

	e.val = val
	e.hasValue = true
	e.fetchedAt = c.now()
	e.lastAccess = c.now()
	return val, nil
}

func (c *Cache[V]) refresh(key string, e *entry[V], gen uint64, loader LoaderFunc[V]) {
	val, err := c.load(context.Background(), loader)

	c.mu.Lock()
	defer c.mu.Unlock()
	e.refreshing = false

	cur, ok := c.entries[key]
	if !ok || cur != e || e.gen != gen {
		// The entry was invalidated while this refresh was in flight.
		// Applying it would overwrite newer state with a superseded read.
		return
	}
	if err != nil {
		logger.Error("swr: background refresh failed, serving stale value", err)
		return
	}
	e.val = val
	e.fetchedAt = c.now()
}

// load runs the loader with retry: delays double from RetryBase, capped
// at RetryCap, up to MaxRetries extra attempts. The last error surfaces.
func (c *Cache[V]) load(ctx context.Context, loader LoaderFunc[V]) (V, error) {
	var lastErr error
	delay := c.opts.RetryBase

	for attempt := 0; attempt <= c.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			if delay > c.opts.RetryCap {
				delay = c.opts.RetryCap
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				var zero V
				return zero, ctx.Err()
			}
			delay *= 2
		}

		c.loads.Add(1)
		val, err := loader(ctx)
		if err == nil {
			return val, nil
		}
		lastErr = err
	}

	var zero V
	return zero, lastErr
}

func (c *Cache[V]) janitor() {
	ticker := time.NewTicker(c.opts.SweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.done:
			return
		}
	}
}

// sweep evicts entries that have not been read for IdleTTL.
func (c *Cache[V]) sweep() {
	c.mu.Lock()
	now := c.now()
	for key, e := range c.entries {
		if e.loading != nil || e.refreshing {
			continue
		}
		if now.Sub(e.lastAccess) >= c.opts.IdleTTL {
			e.gen++
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

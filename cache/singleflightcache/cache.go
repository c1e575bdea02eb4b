package singleflightcache

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	refreshingcache "github.com/karupanerura/refreshing-cache"
	"github.com/karupanerura/refreshing-cache/expiration"
	"github.com/karupanerura/refreshing-cache/internal/panicutil"
)

// Cache is a time-expiring read-through cache of the values returned by a source.
// It is safe for concurrent use.
type Cache[T any] struct {
	source        refreshingcache.Source[T]
	cacheDuration time.Duration
	clock         refreshingcache.Clock
	policy        expiration.Policy
	cloner        refreshingcache.ValueCloner[T]
	gate          *refreshingcache.Gate
	context       func(context.Context) context.Context

	snapshot atomic.Pointer[refreshingcache.Snapshot[T]]
}

var _ refreshingcache.Refresher = (*Cache[struct{}])(nil)

// New creates a new Cache that keeps the values fetched from source for cacheDuration.
func New[T any](source refreshingcache.Source[T], cacheDuration time.Duration, opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		source:        source,
		cacheDuration: cacheDuration,
		clock:         refreshingcache.SystemClock,
		policy:        expiration.MaxAge{},
		cloner:        nil,
		gate:          nil,
		context:       context.WithoutCancel,
	}
	for _, o := range opts {
		o.apply(c)
	}
	if c.cloner == nil {
		c.cloner = refreshingcache.DefaultValueCloner[T]()
	}
	if c.gate == nil {
		c.gate = refreshingcache.NewGate()
	}
	return c
}

type fetchResult[T any] struct {
	snapshot *refreshingcache.Snapshot[T]
	err      error
}

// Get returns the cached values.
// If the snapshot is absent, empty or expired, it fetches the values from the source first.
// Callers arriving while a fetch is in flight wait for it and share its result.
// If the fetch fails, the error is returned unchanged and the previous snapshot is kept.
func (c *Cache[T]) Get(ctx context.Context) ([]T, error) {
	if s := c.snapshot.Load(); !c.isStale(s) {
		return refreshingcache.CloneValues(c.cloner, s.Values), nil
	}

	s, err := c.refresh(ctx, false)
	if err != nil {
		return nil, err
	}
	return refreshingcache.CloneValues(c.cloner, s.Values), nil
}

// Refresh fetches the values from the source and replaces the snapshot even if it is still fresh.
// It waits for any refresh already in flight to finish first.
func (c *Cache[T]) Refresh(ctx context.Context) error {
	_, err := c.refresh(ctx, true)
	return err
}

// Peek returns the current snapshot without fetching.
// It returns false if the cache has never been populated or has been invalidated.
// The returned snapshot is shared and must not be modified.
func (c *Cache[T]) Peek() (*refreshingcache.Snapshot[T], bool) {
	s := c.snapshot.Load()
	return s, s != nil
}

// Invalidate drops the snapshot so that the next Get fetches from the source.
func (c *Cache[T]) Invalidate() {
	c.snapshot.Store(nil)
}

// isStale reports whether the snapshot must be refreshed before it is served.
func (c *Cache[T]) isStale(s *refreshingcache.Snapshot[T]) bool {
	if s.IsEmpty() {
		return true
	}
	return c.policy.IsStale(c.clock.Now().Sub(s.RefreshedAt), c.cacheDuration)
}

// refresh enters the gate and fetches the values unless another caller refreshed them while this one was waiting.
// The gate is left by the fetching goroutine, so a caller giving up does not abort the fetch.
func (c *Cache[T]) refresh(ctx context.Context, force bool) (*refreshingcache.Snapshot[T], error) {
	if err := c.gate.Enter(ctx); err != nil {
		return nil, err
	}
	if !force {
		if s := c.snapshot.Load(); !c.isStale(s) {
			c.gate.Leave()
			return s, nil
		}
	}

	ch := make(chan fetchResult[T], 1)
	go c.fetchAndPublish(c.context(ctx), ch)

	select {
	case r := <-ch:
		if r.err == panicutil.ErrGoexit {
			runtime.Goexit()
		}
		return r.snapshot, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// fetchAndPublish fetches the values, publishes them as a new snapshot and leaves the gate.
// The snapshot is left untouched if the fetch fails.
func (c *Cache[T]) fetchAndPublish(ctx context.Context, ch chan<- fetchResult[T]) {
	panicutil.Deliver(func() ([]T, error) {
		return c.source.Fetch(ctx)
	}, func(values []T, err error) {
		defer c.gate.Leave()
		if err != nil {
			ch <- fetchResult[T]{err: err}
			return
		}

		s := &refreshingcache.Snapshot[T]{
			Values:      values,
			RefreshedAt: c.clock.Now(),
		}
		c.snapshot.Store(s)
		ch <- fetchResult[T]{snapshot: s}
	})
}

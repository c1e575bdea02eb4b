// Package intervalrefresher refreshes a cache in the background at a fixed interval,
// so that readers rarely find the snapshot expired.
package intervalrefresher

import (
	"context"
	"time"

	refreshingcache "github.com/karupanerura/refreshing-cache"
)

// IntervalRefresher is a background refresher that refreshes a cache at a fixed interval.
// Refreshes go through the cache's own gate, so they never overlap with a refresh triggered by a reader.
type IntervalRefresher struct {
	refresher         refreshingcache.Refresher
	interval          time.Duration
	onBackgroundError func(error)
}

// New creates a new IntervalRefresher.
// Errors returned by background refreshes are passed to onBackgroundError.
func New(refresher refreshingcache.Refresher, interval time.Duration, onBackgroundError func(error)) *IntervalRefresher {
	return &IntervalRefresher{
		refresher:         refresher,
		interval:          interval,
		onBackgroundError: onBackgroundError,
	}
}

// LaunchBackgroundRefresher refreshes once right away and then at every interval.
// It can be stopped by canceling the context passed to LaunchBackgroundRefresher.
// The returned channel is closed once the background goroutine has returned.
func (r *IntervalRefresher) LaunchBackgroundRefresher(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.poll(ctx)
	}()
	return done
}

func (r *IntervalRefresher) poll(ctx context.Context) {
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *IntervalRefresher) refresh(ctx context.Context) {
	if err := r.refresher.Refresh(ctx); err != nil && ctx.Err() == nil {
		r.onBackgroundError(err)
	}
}

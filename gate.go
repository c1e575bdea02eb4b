package refreshingcache

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Gate is a mutual-exclusion primitive that admits exactly one holder at a time.
// Unlike sync.Mutex, waiting for a Gate can be abandoned by canceling the context.
type Gate struct {
	sem *semaphore.Weighted
}

// NewGate creates a new Gate.
func NewGate() *Gate {
	return &Gate{sem: semaphore.NewWeighted(1)}
}

// Enter blocks until the gate is acquired or the context is done.
// If the context is done first, it returns the context error and the gate is not held.
func (g *Gate) Enter(ctx context.Context) error {
	return g.sem.Acquire(ctx, 1)
}

// TryEnter acquires the gate without blocking.
// It reports whether the gate was acquired.
func (g *Gate) TryEnter() bool {
	return g.sem.TryAcquire(1)
}

// Leave releases the gate.
// It panics if the gate is not held.
func (g *Gate) Leave() {
	g.sem.Release(1)
}

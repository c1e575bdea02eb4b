package main

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// slowQuery stands in for an expensive database query.
type slowQuery struct {
	delay   time.Duration
	queries atomic.Int32
}

// Fetch waits for the configured delay and returns the current values.
func (q *slowQuery) Fetch(ctx context.Context) ([]string, error) {
	n := q.queries.Add(1)
	select {
	case <-time.After(q.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return []string{
		fmt.Sprintf("generation-%d/1", n),
		fmt.Sprintf("generation-%d/2", n),
		fmt.Sprintf("generation-%d/3", n),
	}, nil
}

var errUnavailable = errors.New("store temporarily unavailable")

// flakyStore stands in for a store whose writes fail a fixed number of
// times for every item before they succeed.
type flakyStore struct {
	delay    time.Duration
	failures int

	mu       sync.Mutex
	attempts map[string]int
}

func newFlakyStore(delay time.Duration, failures int) *flakyStore {
	return &flakyStore{
		delay:    delay,
		failures: failures,
		attempts: map[string]int{},
	}
}

// Save waits for the configured delay and fails until the item has been
// attempted more than the configured number of failures.
func (s *flakyStore) Save(ctx context.Context, item string) error {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[item]++
	if s.attempts[item] <= s.failures {
		return errUnavailable
	}
	return nil
}

func (s *flakyStore) attemptsOf(item string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts[item]
}

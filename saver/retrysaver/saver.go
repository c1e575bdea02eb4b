package retrysaver

import (
	"context"
	"fmt"
	"strings"

	refreshingcache "github.com/karupanerura/refreshing-cache"
	"github.com/sourcegraph/conc/iter"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/util/retry"
)

// DefaultMaxAttempts is the number of attempts made for an item when WithMaxAttempts is not given.
const DefaultMaxAttempts = 3

// Saver saves items to a repository, retrying failed saves.
// It holds no mutable state, so it is safe for concurrent use.
type Saver[T any] struct {
	repository  refreshingcache.Repository[T]
	maxAttempts int
	onRetry     func(attempt int, err error)
}

// New creates a new Saver that saves items to the repository.
func New[T any](repository refreshingcache.Repository[T], opts ...Option[T]) *Saver[T] {
	s := &Saver[T]{
		repository:  repository,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, o := range opts {
		o.apply(s)
	}
	if s.maxAttempts < 1 {
		s.maxAttempts = 1
	}
	return s
}

// Save saves the item, retrying immediately on failure until the max attempts are used up.
// It returns nil as soon as one attempt succeeds.
// Otherwise it returns the error of the last attempt unchanged.
// If ctx is done after a failed attempt, no further attempt is made and that attempt's error is returned.
func (s *Saver[T]) Save(ctx context.Context, item T) error {
	attempt := 0
	return retry.OnError(
		wait.Backoff{Steps: s.maxAttempts},
		func(err error) bool {
			if attempt >= s.maxAttempts || ctx.Err() != nil {
				return false
			}
			if s.onRetry != nil {
				s.onRetry(attempt, err)
			}
			return true
		},
		func() error {
			attempt++
			return s.repository.Save(ctx, item)
		},
	)
}

// SaveMulti saves the items concurrently, each with its own retries.
// It returns nil if every item is saved. Otherwise it returns a *MultiError
// whose Errors are in the same order as the items.
func (s *Saver[T]) SaveMulti(ctx context.Context, items []T) error {
	errs := iter.Map(items, func(item *T) error {
		return s.Save(ctx, *item)
	})
	for _, err := range errs {
		if err != nil {
			return &MultiError{Errors: errs}
		}
	}
	return nil
}

// MultiError is returned by SaveMulti when some of the items could not be saved.
type MultiError struct {
	// Errors holds the error of each item in the order of the items.
	// It is nil for the items that were saved.
	Errors []error
}

// Error returns the failures with their item indexes.
func (e *MultiError) Error() string {
	var b strings.Builder
	b.WriteString("failed to save items:")
	for i, err := range e.Errors {
		if err != nil {
			fmt.Fprintf(&b, " [%d] %v;", i, err)
		}
	}
	return strings.TrimSuffix(b.String(), ";")
}

// Unwrap returns the non-nil errors, so that errors.Is and errors.As see every failure.
func (e *MultiError) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors))
	for _, err := range e.Errors {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

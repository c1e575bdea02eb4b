package refreshingcache

import (
	"context"
	"time"
)

// Snapshot is an immutable set of cached values with the time they were fetched.
// A Snapshot is never modified after it is published; a refresh replaces it as a whole.
type Snapshot[T any] struct {
	// Values are the values returned by the source.
	Values []T
	// RefreshedAt is the time the values were fetched.
	RefreshedAt time.Time
}

// IsEmpty reports whether the snapshot holds no values.
// A nil snapshot is empty.
func (s *Snapshot[T]) IsEmpty() bool {
	return s == nil || len(s.Values) == 0
}

// Source is an interface for fetching values from an external source.
// It stands in for an expensive query, and may be slow.
type Source[T any] interface {
	// Fetch retrieves all values from the source.
	// If it returns a non-nil error, the returned values must be nil.
	Fetch(context.Context) ([]T, error)
}

// Repository is an interface for persisting items to an external store.
// Implementations must be thread-safe.
type Repository[T any] interface {
	// Save persists the item.
	// It returns an error if the item could not be persisted.
	Save(context.Context, T) error
}

// Refresher is an interface for caches that can be refreshed on demand.
// Implementations must be thread-safe.
type Refresher interface {
	// Refresh fetches the values from the source and replaces the cached snapshot.
	Refresh(context.Context) error
}

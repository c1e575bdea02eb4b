package repository

import (
	"context"

	refreshingcache "github.com/karupanerura/refreshing-cache"
)

var _ refreshingcache.Repository[struct{}] = (*FunctionsRepository[struct{}])(nil)

// FunctionsRepository is a refreshingcache.Repository implementation that uses a function to save items.
type FunctionsRepository[T any] struct {
	// SaveFunc persists the item.
	// It returns an error if the item could not be persisted.
	SaveFunc func(context.Context, T) error
}

// Save calls the SaveFunc function.
func (r *FunctionsRepository[T]) Save(ctx context.Context, item T) error {
	return r.SaveFunc(ctx, item)
}

var _ refreshingcache.Repository[struct{}] = (*ObservedRepository[struct{}])(nil)

// ObservedRepository is a decorator for a refreshingcache.Repository that reports failed saves.
// Unlike a silent decorator it does not swallow the error: it is returned unchanged after OnError is called.
type ObservedRepository[T any] struct {
	// Repository is the underlying repository that this decorator wraps.
	Repository refreshingcache.Repository[T]

	// OnError is a function that is called when a save fails.
	// The item and the error are passed to the function as arguments.
	OnError func(T, error)
}

// Save saves the item to the underlying repository.
// If an error occurs and an OnError handler is set, the error will be passed to the OnError handler.
func (r *ObservedRepository[T]) Save(ctx context.Context, item T) error {
	err := r.Repository.Save(ctx, item)
	if err != nil && r.OnError != nil {
		r.OnError(item, err)
	}
	return err
}

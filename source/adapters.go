package source

import (
	"context"

	refreshingcache "github.com/karupanerura/refreshing-cache"
)

// FunctionSource is a source that uses a function to fetch the values.
type FunctionSource[T any] func(context.Context) ([]T, error)

var _ refreshingcache.Source[struct{}] = (FunctionSource[struct{}])(nil)

// Fetch calls the function.
func (f FunctionSource[T]) Fetch(ctx context.Context) ([]T, error) {
	return f(ctx)
}

// LintSource is a source that is used for linting purposes.
// It uses a source to fetch the values.
type LintSource[T any] struct {
	Source refreshingcache.Source[T]
}

var _ refreshingcache.Source[struct{}] = (*LintSource[struct{}])(nil)

// Fetch fetches the values from the source.
// It validates the behavior of the source implementation, ensuring it properly follows the Source contract.
// In particular, it checks that Fetch does not return values together with an error.
func (s *LintSource[T]) Fetch(ctx context.Context) ([]T, error) {
	values, err := s.Source.Fetch(ctx)
	if err != nil && values != nil {
		panic("must not return values with an error")
	}
	return values, err
}

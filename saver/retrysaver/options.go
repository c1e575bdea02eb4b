package retrysaver

// Option is the interface for the options of the Saver.
type Option[T any] interface {
	apply(*Saver[T])
}

type optionFunc[T any] func(*Saver[T])

func (f optionFunc[T]) apply(s *Saver[T]) {
	f(s)
}

// WithMaxAttempts sets the total number of attempts for each item, including the first one.
// Values less than 1 are treated as 1.
// The default is DefaultMaxAttempts.
func WithMaxAttempts[T any](n int) Option[T] {
	return optionFunc[T](func(s *Saver[T]) {
		s.maxAttempts = n
	})
}

// WithOnRetry sets a callback that is invoked with the failed attempt number and its error
// right before the next attempt starts.
func WithOnRetry[T any](onRetry func(attempt int, err error)) Option[T] {
	return optionFunc[T](func(s *Saver[T]) {
		s.onRetry = onRetry
	})
}

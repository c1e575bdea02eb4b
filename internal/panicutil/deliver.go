package panicutil

import (
	"errors"

	"github.com/sourcegraph/conc/panics"
)

// ErrGoexit is delivered when the function calls runtime.Goexit.
var ErrGoexit = errors.New("runtime.Goexit is called")

// Deliver runs f and hands its outcome to done exactly once, however f ends.
//
//   - f returns: done receives its result and error.
//   - f panics: the panic is recovered and done receives the zero result and a *panics.ErrRecovered.
//   - f calls runtime.Goexit: done receives the zero result and ErrGoexit, then the goroutine keeps exiting.
//
// done runs in a deferred call of the current goroutine.
func Deliver[R any](f func() (R, error), done func(R, error)) {
	var (
		result    R
		err       error
		returned  bool
		recovered bool
	)
	defer func() {
		if !returned && !recovered {
			var zero R
			result, err = zero, ErrGoexit
		}
		done(result, err)
	}()

	func() {
		defer func() {
			if returned {
				return
			}
			rec := panics.NewRecovered(2, recover())
			err = rec.AsError()
		}()
		result, err = f()
		returned = true
	}()
	recovered = !returned
}

package panicutil_test

import (
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/karupanerura/refreshing-cache/internal/panicutil"
	"github.com/sourcegraph/conc/panics"
)

type outcome struct {
	result int
	err    error
	calls  int
}

func deliver(f func() (int, error)) *outcome {
	o := &outcome{}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		panicutil.Deliver(f, func(result int, err error) {
			o.calls++
			o.result, o.err = result, err
		})
	}()
	wg.Wait()
	return o
}

func TestDeliver(t *testing.T) {
	t.Parallel()

	t.Run("Normal return", func(t *testing.T) {
		t.Parallel()

		o := deliver(func() (int, error) { return 42, nil })
		if o.err != nil {
			t.Errorf("expected no error, got: %v", o.err)
		}
		if o.result != 42 {
			t.Errorf("expected 42, got: %d", o.result)
		}
		if o.calls != 1 {
			t.Errorf("expected done to be called once, got: %d", o.calls)
		}
	})

	t.Run("Normal return with error", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("expected error")
		o := deliver(func() (int, error) { return 0, expectedErr })
		if o.err != expectedErr {
			t.Errorf("expected error %v, got: %v", expectedErr, o.err)
		}
	})

	t.Run("Panic", func(t *testing.T) {
		t.Parallel()

		o := deliver(func() (int, error) { panic("test panic") })
		var recoveredErr *panics.ErrRecovered
		if !errors.As(o.err, &recoveredErr) {
			t.Fatalf("expected error to be of type *panics.ErrRecovered, got: %T", o.err)
		}
		if recoveredErr.Value != "test panic" {
			t.Errorf("expected panic value 'test panic', got: %v", recoveredErr.Value)
		}
		if o.result != 0 {
			t.Errorf("expected zero result, got: %d", o.result)
		}
		if o.calls != 1 {
			t.Errorf("expected done to be called once, got: %d", o.calls)
		}
	})

	t.Run("runtime.Goexit", func(t *testing.T) {
		t.Parallel()

		o := deliver(func() (int, error) {
			runtime.Goexit()
			return 1, nil
		})
		if o.err != panicutil.ErrGoexit {
			t.Errorf("expected ErrGoexit, got: %v", o.err)
		}
		if o.calls != 1 {
			t.Errorf("expected done to be called once, got: %d", o.calls)
		}
	})
}

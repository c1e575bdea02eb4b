package intervalrefresher_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/refreshing-cache/cache/intervalrefresher"
	"github.com/karupanerura/refreshing-cache/cache/singleflightcache"
	"github.com/karupanerura/refreshing-cache/source"
)

type mockRefresher func(context.Context) error

func (f mockRefresher) Refresh(ctx context.Context) error {
	return f(ctx)
}

func TestLaunchBackgroundRefresher(t *testing.T) {
	t.Parallel()

	var callCount uint32
	r := mockRefresher(func(context.Context) error {
		atomic.AddUint32(&callCount, 1)
		return nil
	})

	var bgErrs []error
	var mu sync.Mutex
	refresher := intervalrefresher.New(r, 200*time.Millisecond, func(err error) {
		mu.Lock()
		defer mu.Unlock()
		bgErrs = append(bgErrs, err)
	})
	refresher.LaunchBackgroundRefresher(t.Context())

	time.Sleep(100 * time.Millisecond)
	if atomic.LoadUint32(&callCount) != 1 {
		t.Errorf("expect to refreshed at first time")
	}

	time.Sleep(200 * time.Millisecond)
	if atomic.LoadUint32(&callCount) != 2 {
		t.Errorf("expect to refreshed at second time")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(bgErrs) != 0 {
		t.Errorf("should no background errors, but got: %+v", bgErrs)
	}
}

func TestLaunchBackgroundRefresher_Error(t *testing.T) {
	t.Parallel()

	refreshErr := errors.New("refresh error")
	r := mockRefresher(func(context.Context) error {
		return refreshErr
	})

	var bgErrs []error
	var mu sync.Mutex
	refresher := intervalrefresher.New(r, 200*time.Millisecond, func(err error) {
		mu.Lock()
		defer mu.Unlock()
		bgErrs = append(bgErrs, err)
	})
	refresher.LaunchBackgroundRefresher(t.Context())

	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if df := cmp.Diff([]error{refreshErr, refreshErr}, bgErrs, cmp.Comparer(func(x, y error) bool {
		return errors.Is(x, y) || errors.Is(y, x)
	})); df != "" {
		t.Errorf("unexpected background errors: %+v", bgErrs)
	}
}

func TestLaunchBackgroundRefresher_Stop(t *testing.T) {
	t.Parallel()

	var callCount uint32
	r := mockRefresher(func(context.Context) error {
		atomic.AddUint32(&callCount, 1)
		return nil
	})

	ctx, cancel := context.WithCancel(t.Context())
	done := intervalrefresher.New(r, 50*time.Millisecond, func(err error) {
		t.Errorf("unexpected background error: %v", err)
	}).LaunchBackgroundRefresher(ctx)

	time.Sleep(120 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected the background goroutine to return after cancel")
	}
	stopped := atomic.LoadUint32(&callCount)

	time.Sleep(150 * time.Millisecond)
	if got := atomic.LoadUint32(&callCount); got != stopped {
		t.Errorf("expected no refresh after cancel, but the count went from %d to %d", stopped, got)
	}
}

func TestLaunchBackgroundRefresher_SingleFlightCache(t *testing.T) {
	t.Parallel()

	var callCount uint32
	cache := singleflightcache.New[string](source.FunctionSource[string](func(context.Context) ([]string, error) {
		atomic.AddUint32(&callCount, 1)
		return []string{"1", "2", "3"}, nil
	}), time.Hour)

	intervalrefresher.New(cache, time.Hour, func(err error) {
		t.Errorf("unexpected background error: %v", err)
	}).LaunchBackgroundRefresher(t.Context())

	time.Sleep(100 * time.Millisecond)
	if _, ok := cache.Peek(); !ok {
		t.Fatal("expected the cache to be populated in the background")
	}

	values, err := cache.Get(t.Context())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"1", "2", "3"}, values); diff != "" {
		t.Errorf("unexpected values (-want +got):\n%s", diff)
	}
	if got := atomic.LoadUint32(&callCount); got != 1 {
		t.Errorf("expected source to be called once, but it was called %d times", got)
	}
}

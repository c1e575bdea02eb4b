package expiration

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Policy decides whether a snapshot is stale.
type Policy interface {
	// IsStale reports whether a snapshot of the given age must be refreshed
	// before it is served by a cache configured with cacheDuration.
	IsStale(age, cacheDuration time.Duration) bool
}

// PolicyFunc is a function type that implements the Policy interface.
type PolicyFunc func(age, cacheDuration time.Duration) bool

var _ Policy = PolicyFunc(nil)

// IsStale calls the function.
func (f PolicyFunc) IsStale(age, cacheDuration time.Duration) bool {
	return f(age, cacheDuration)
}

// MaxAge is the default policy.
// A snapshot is stale once its age exceeds the cache duration, so it is still
// served at exactly the cache duration.
type MaxAge struct{}

var _ Policy = MaxAge{}

// IsStale returns true if age > cacheDuration.
func (MaxAge) IsStale(age, cacheDuration time.Duration) bool {
	return age > cacheDuration
}

// Never is a policy under which a populated snapshot never goes stale.
// It is only replaced by an explicit refresh.
type Never struct{}

var _ Policy = Never{}

// IsStale always returns false.
func (Never) IsStale(time.Duration, time.Duration) bool {
	return false
}

// EarlyRefresh is a policy that may judge a snapshot stale during the last Window of its
// cache duration.
// Processes sharing the same backing source refresh at different times with it,
// which spreads their fetches out.
type EarlyRefresh struct {
	// Window is the span before the cache duration in which the snapshot may be judged stale.
	// A Window longer than the cache duration covers the whole lifetime of the snapshot.
	Window time.Duration

	// Probability is the chance, between 0 and 1, that a check inside Window judges the snapshot stale.
	Probability float64

	// Random is the random number generator.
	// If nil, the global generator is used.
	Random *rand.Rand

	mu sync.Mutex
}

var _ Policy = (*EarlyRefresh)(nil)

// IsStale returns true if age > cacheDuration.
// Inside the window it returns true with the configured probability.
func (p *EarlyRefresh) IsStale(age, cacheDuration time.Duration) bool {
	if age > cacheDuration {
		return true
	}
	if age <= cacheDuration-p.Window || p.Probability <= 0 {
		return false
	}
	return p.float64() < p.Probability
}

func (p *EarlyRefresh) float64() float64 {
	if p.Random == nil {
		return rand.Float64()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Random.Float64()
}

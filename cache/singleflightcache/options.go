package singleflightcache

import (
	"context"

	refreshingcache "github.com/karupanerura/refreshing-cache"
	"github.com/karupanerura/refreshing-cache/expiration"
)

// Option is the interface for the options of the Cache.
type Option[T any] interface {
	apply(*Cache[T])
}

type optionFunc[T any] func(*Cache[T])

func (f optionFunc[T]) apply(c *Cache[T]) {
	f(c)
}

// WithClock sets the clock used to stamp and check snapshots.
// The default clock is refreshingcache.SystemClock.
func WithClock[T any](clock refreshingcache.Clock) Option[T] {
	return optionFunc[T](func(c *Cache[T]) {
		c.clock = clock
	})
}

// WithExpirationPolicy sets the policy that judges the age of the snapshot.
// The default policy is expiration.MaxAge.
func WithExpirationPolicy[T any](policy expiration.Policy) Option[T] {
	return optionFunc[T](func(c *Cache[T]) {
		c.policy = policy
	})
}

// WithCloner sets the value cloner used to copy the values handed to each caller.
// The default value cloner is refreshingcache.DefaultValueCloner.
func WithCloner[T any](cloner refreshingcache.ValueCloner[T]) Option[T] {
	return optionFunc[T](func(c *Cache[T]) {
		c.cloner = cloner
	})
}

// WithGate sets the gate that serializes refreshes.
// Caches sharing a gate never refresh at the same time.
// By default each cache has its own gate.
func WithGate[T any](gate *refreshingcache.Gate) Option[T] {
	return optionFunc[T](func(c *Cache[T]) {
		c.gate = gate
	})
}

// WithBackgroundContextProvider sets the provider of the context passed to the source.
// The provider receives the context of the caller that triggered the fetch.
// The default provider is context.WithoutCancel, so the fetch keeps running when that caller gives up.
func WithBackgroundContextProvider[T any](provider func(context.Context) context.Context) Option[T] {
	return optionFunc[T](func(c *Cache[T]) {
		c.context = provider
	})
}

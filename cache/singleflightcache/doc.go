// Package singleflightcache provides a read-through cache of a single value list
// that never sends more than one concurrent fetch to its source.
//
// Readers are served lock-free from an immutable snapshot while it is fresh.
// Once the snapshot is stale, readers queue on a gate; the first one fetches, and
// the others re-check the snapshot after entering the gate and reuse the result
// instead of fetching again (double-checked locking).
//
// The Cache can be configured with options:
//   - WithClock: Sets the time source used to stamp and check snapshots
//   - WithExpirationPolicy: Sets how the snapshot age is judged
//   - WithCloner: Sets the value cloner used to copy values to each caller
//   - WithGate: Shares a refresh gate between caches
//   - WithBackgroundContextProvider: Sets the context used by fetches
package singleflightcache

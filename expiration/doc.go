// Package expiration provides policies that decide when a cached snapshot is stale.
//
// A policy is given the age of the snapshot, that is the time elapsed since it was
// refreshed, and the cache duration. The single-flight cache consults it both on
// its lock-free fast path and again after it has entered the refresh gate.
package expiration

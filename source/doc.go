// Package source provides adapters for implementing refreshingcache.Source.
package source

// Package cache stores generated matrices and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry below a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: never stores anything, for --no-cache and tests
//
// # Keys
//
// Keys are built by a [Keyer] from a hash of the header definition, including
// its hidden and collapsed state, plus the options that affect the cached
// value. [ScopedKeyer] prefixes every key, which keeps several tenants or
// environments apart in one Redis database.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// A missing or expired entry is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Default time-to-live values per entry kind.
const (
	TTLMatrix   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

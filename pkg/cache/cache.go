// Package cache provides pluggable byte caching for HTTP responses.
//
// The registry client caches manifest fetches through the [Cache] interface
// so repeated invocations don't re-download the catalog. Three backends are
// provided:
//   - [FileCache]: directory-based cache for normal CLI use
//   - [RedisCache]: shared cache for CI runners that reuse one redis
//   - [NullCache]: no-op cache for --refresh or tests
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional expiry.
//
// Implementations must treat a missing key as a miss (ok=false, nil error),
// not an error. A ttl of 0 means the entry never expires.
type Cache interface {
	// Get retrieves a value. ok is false on a miss or expired entry.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores a value with the given time-to-live.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

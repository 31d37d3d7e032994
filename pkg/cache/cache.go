// Package cache provides the result cache used by the ranking pipeline.
//
// A [Cache] stores opaque byte values under string keys with an optional
// TTL. Two backends are provided:
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the API server
//
// [NullCache] disables caching. Keys are built by a [Keyer] so that every
// input affecting the output lands in the key.
package cache

import (
	"context"
	"time"
)

// TTLs for cached values.
const (
	// TTLRanking is how long a computed ranking stays cached. Rankings are
	// keyed by the content hash of their inputs, so staleness is bounded by
	// disk usage rather than correctness.
	TTLRanking = 7 * 24 * time.Hour

	// TTLArtifact is how long a rendered graph image stays cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores byte values by key.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

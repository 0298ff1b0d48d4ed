// Package cache caches rendered diagram artifacts.
//
// Rendering a diagram means laying out a graph with Graphviz, which is
// the expensive step of the pipeline. The [Cache] interface abstracts
// the storage backend: [NullCache] for disabled caching, [FileCache]
// for CLI usage, and [RedisCache] for multi-instance deployments.
// Keys are derived from content hashes (see [ArtifactKey]), so entries
// never need invalidation beyond their TTL.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte blobs under string keys with a TTL.
// Implementations must treat a missing key as a miss, not an error.
type Cache interface {
	// Get returns the cached data and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache is a no-op cache that never stores anything. Used when
// caching is disabled and in tests.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return &NullCache{} }

// Get always returns a miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error { return nil }

// Close does nothing.
func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)

// Package cache provides byte-level caches for rendered graph artifacts.
//
// Rendering SVG shells out to Graphviz, which dominates the cost of a
// render. Artifact keys are derived from a hash of the DOT text that
// produced them, so a cached entry can never go stale: any change to the
// graph or the render options changes the key.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and still valid; expired or unreadable entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero stores the entry without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

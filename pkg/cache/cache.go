// Package cache provides byte caches for remotely fetched catalogs.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per key under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance for multi-instance servers
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer] so that different deployments can share a
// backend without colliding.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with an optional time-to-live.
type Cache interface {
	// Get returns the value for key. The boolean is false on a miss or
	// when the entry has expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// CatalogKey returns the key for the raw catalog fetched from source.
	CatalogKey(source string) string
}

// DefaultKeyer hashes sources into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// CatalogKey implements Keyer.
func (DefaultKeyer) CatalogKey(source string) string {
	return hashKey("catalog", source)
}

// ScopedKeyer prefixes every key of an inner keyer, giving each deployment
// its own namespace in a shared backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// If inner is nil, the default keyer is used.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// CatalogKey implements Keyer.
func (k *ScopedKeyer) CatalogKey(source string) string {
	return k.prefix + k.inner.CatalogKey(source)
}

// Package cache stores computed layouts and rendered artifacts by key.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry, for the CLI and watch mode
//   - [RedisCache]: shared cache for several API servers
//   - [MongoCache]: shared cache with server-side TTL expiry
//
// All backends treat expired or corrupt entries as misses. The shared
// backends retry transient network failures with a short backoff.
//
// # Keys
//
// A [Keyer] derives keys from a hash of the input layout plus every option
// that influences the result, so changing a setting never serves a stale
// layout:
//
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey(cache.Hash(input), cache.LayoutKeyOpts{Operation: "compact", Columns: 24})
//
// Wrap a keyer with [NewScopedKeyer] to give each dashboard team its own
// namespace on a shared backend.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Clear empties c if the backend supports it.
func Clear(ctx context.Context, c Cache) error {
	if cl, ok := c.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return nil
}

// Hash returns the hex SHA-256 of data. Layouts are hashed in their
// canonical JSON form before keying.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NullCache misses on every lookup. It backs --no-cache and
// backend = "none".
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)

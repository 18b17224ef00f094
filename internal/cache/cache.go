// Package cache provides TTL key-value stores for converted documents and
// search results.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Store is a TTL key-value store. Implementations must be safe for
// concurrent use. A miss is not an error: Get returns found=false for both
// absent and expired entries.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key builds a stable cache key from an entry kind ("page", "search", "toc")
// and its identifying input.
func Key(kind, input string) string {
	sum := sha256.Sum256([]byte(kind + "\x00" + input))
	return kind + ":" + hex.EncodeToString(sum[:])
}

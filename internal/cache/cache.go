// Package cache defines the store used to memoize beacon query results.
package cache

import (
	"context"
	"time"
)

type Interface interface {
	// Get returns the cached value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	// DelPrefix removes every key under a prefix and reports how many
	// keys were deleted. Used by the invalidation consumer.
	DelPrefix(ctx context.Context, prefix string) (int, error)
}

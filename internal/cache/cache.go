package cache

import (
	"context"
	"time"
)

// Cache stores serialized query results under string keys with a TTL.
type Cache interface {
	// Get returns the value under key and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

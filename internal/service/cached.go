package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pavlem/postflow/internal/cache"
)

// readThrough serves the value under key from the cache when present,
// otherwise fetches from the source of truth, stores the serialized result
// with the given TTL and returns it. Whatever fetch returns is cached as-is,
// including absence (a nil pointer round-trips as JSON null).
func readThrough[T any](ctx context.Context, c cache.Cache, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	raw, ok, err := c.Get(ctx, key)
	if err != nil {
		return zero, fmt.Errorf("cache get %s: %w", key, err)
	}
	if ok {
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return zero, fmt.Errorf("cache decode %s: %w", key, err)
		}
		return v, nil
	}

	v, err := fetch(ctx)
	if err != nil {
		return zero, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return zero, fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.Set(ctx, key, string(data), ttl); err != nil {
		return zero, fmt.Errorf("cache set %s: %w", key, err)
	}
	return v, nil
}

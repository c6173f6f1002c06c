// Package cache holds the read caches used by the service layer. Values are
// stored as JSON so a reader never shares memory with another reader, and
// every entry has a sliding lifetime that restarts on each hit.
package cache

import (
	"context" // Request-scoped context
	"fmt"     // Error formatting
	"time"    // Sliding expiration window

	"github.com/redis/go-redis/v9" // Redis client
)

// Store is a key-value cache with sliding expiration
type Store interface {
	// Get decodes the value under key into dest. It reports false on a miss.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, key string) error
}

// New picks the backend by driver name. rdb is only used by the redis driver.
func New(driver string, ttl time.Duration, size int, rdb *redis.Client) (Store, error) {
	switch driver {
	case "", "memory":
		return NewMemory(size, ttl) // In-process LRU
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("redis cache requires a redis client")
		}
		return NewRedis(rdb, ttl), nil // Shared between instances
	default:
		return nil, fmt.Errorf("unsupported CACHE_DRIVER %q", driver)
	}
}

package cache

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // redis.Nil detection
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Redis is a Store shared between processes. GETEX pushes the TTL forward on
// every hit, which gives the same sliding behaviour as Memory.
type Redis struct {
	rdb *redis.Client // Redis client
	ttl time.Duration // Sliding window
}

// NewRedis wraps a connected client
func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

// Get retrieves a value from Redis, refreshes its TTL and unmarshals it into dest
func (r *Redis) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := r.rdb.GetEx(ctx, key, r.ttl).Bytes() // Get value and slide the TTL
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal(val, dest) // Unmarshal JSON into dest
}

// Set sets a value in Redis with the sliding TTL
func (r *Redis) Set(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return r.rdb.Set(ctx, key, b, r.ttl).Err() // Set value in Redis with TTL
}

// Invalidate deletes a key from Redis
func (r *Redis) Invalidate(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err() // Delete key from Redis
}

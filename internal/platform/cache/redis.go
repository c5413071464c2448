// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements [Cache] using Redis.
type RedisCache struct {
	client *redis.Client
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache creates a new Redis-backed cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

/*
Get retrieves a cached value.

Returns:
  - []byte: The stored value
  - bool: false when the key is absent or expired
  - error: Connectivity errors
*/
func (store *RedisCache) Get(context context.Context, key string) ([]byte, bool, error) {
	value, err := store.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_cache_get_failed: %w", err)
	}
	return value, true, nil
}

// Set stores value under key for ttl.
func (store *RedisCache) Set(context context.Context, key string, value []byte, ttl time.Duration) error {
	if err := store.client.Set(context, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis_cache_set_failed: %w", err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (store *RedisCache) Delete(context context.Context, key string) error {
	if err := store.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_cache_delete_failed: %w", err)
	}
	return nil
}

// Incr increments the counter at key with INCR.
func (store *RedisCache) Incr(context context.Context, key string) (int64, error) {
	value, err := store.client.Incr(context, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_cache_incr_failed: %w", err)
	}
	return value, nil
}

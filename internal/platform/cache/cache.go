// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cache provides a small byte-oriented key/value cache with expiry.

Two implementations are provided:

  - [RedisCache]: shared across replicas, used when REDIS_URL is configured.
  - [MemoryCache]: process-local, backed by ttlcache.

A miss is not an error: Get reports it through its boolean result.
*/
package cache

import (
	"context"
	"time"
)

// Cache is the storage contract for cached values.
type Cache interface {
	Get(context context.Context, key string) ([]byte, bool, error)
	Set(context context.Context, key string, value []byte, ttl time.Duration) error
	Delete(context context.Context, key string) error

	// Incr atomically increments the integer stored at key and returns the
	// new value. An absent key counts as zero. Counters never expire.
	Incr(context context.Context, key string) (int64, error)
}

// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryCache implements [Cache] in process memory.
//
// Reads do not extend an entry's lifetime: a value expires ttl after it was
// set, however often it is read.
type MemoryCache struct {
	items *ttlcache.Cache[string, []byte]

	// counters serializes Incr read-modify-write cycles.
	counters sync.Mutex
}

var _ Cache = (*MemoryCache)(nil)

// NewMemoryCache creates a cache and starts its expiry loop. Call Close to stop it.
func NewMemoryCache() *MemoryCache {
	items := ttlcache.New(ttlcache.WithDisableTouchOnHit[string, []byte]())
	go items.Start()
	return &MemoryCache{items: items}
}

func (store *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	item := store.items.Get(key)
	if item == nil || item.IsExpired() {
		return nil, false, nil
	}
	return append([]byte(nil), item.Value()...), true, nil
}

func (store *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	store.items.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

func (store *MemoryCache) Delete(_ context.Context, key string) error {
	store.items.Delete(key)
	return nil
}

func (store *MemoryCache) Incr(_ context.Context, key string) (int64, error) {
	store.counters.Lock()
	defer store.counters.Unlock()

	var current int64
	if item := store.items.Get(key); item != nil && !item.IsExpired() {
		parsed, err := strconv.ParseInt(string(item.Value()), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("memory_cache_incr_not_integer: %w", err)
		}
		current = parsed
	}

	current++
	store.items.Set(key, []byte(strconv.FormatInt(current, 10)), ttlcache.NoTTL)
	return current, nil
}

// Close stops the expiry loop.
func (store *MemoryCache) Close() {
	store.items.Stop()
}

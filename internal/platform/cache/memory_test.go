// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/cache"
)

/*
TestMemoryCache_Lifecycle covers miss, hit, delete and expiry.
*/
func TestMemoryCache_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryCache()
	defer store.Close()

	// 1. Miss is not an error
	_, ok, err := store.Get(ctx, "counts")
	require.NoError(t, err)
	assert.False(t, ok)

	// 2. Hit returns a private copy
	require.NoError(t, store.Set(ctx, "counts", []byte("42"), time.Minute))
	value, ok, err := store.Get(ctx, "counts")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("42"), value)
	value[0] = 'x'
	again, _, _ := store.Get(ctx, "counts")
	assert.Equal(t, []byte("42"), again)

	// 3. Delete
	require.NoError(t, store.Delete(ctx, "counts"))
	_, ok, _ = store.Get(ctx, "counts")
	assert.False(t, ok)

	// 4. Expiry
	require.NoError(t, store.Set(ctx, "short", []byte("1"), 20*time.Millisecond))
	assert.Eventually(t, func() bool {
		_, ok, _ := store.Get(ctx, "short")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

/*
TestMemoryCache_Incr counts from zero, survives concurrent callers and
refuses to increment a non-integer value.
*/
func TestMemoryCache_Incr(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryCache()
	defer store.Close()

	// 1. Absent key starts at zero
	value, err := store.Incr(ctx, "version")
	require.NoError(t, err)
	assert.Equal(t, int64(1), value)

	// 2. Concurrent increments are not lost
	var group sync.WaitGroup
	for range 50 {
		group.Add(1)
		go func() {
			defer group.Done()
			_, err := store.Incr(ctx, "version")
			assert.NoError(t, err)
		}()
	}
	group.Wait()
	raw, ok, err := store.Get(ctx, "version")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "51", string(raw))

	// 3. Non-integer value
	require.NoError(t, store.Set(ctx, "counts", []byte("{}"), time.Minute))
	_, err = store.Incr(ctx, "counts")
	assert.Error(t, err)
}

package summary_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/internal/core/summary"
	"github.com/taibuivan/locallibrary/internal/platform/cache"
	"github.com/taibuivan/locallibrary/internal/platform/view"
)

func seed(t *testing.T, store *catalog.MemoryStore) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.InsertAuthor(ctx, &catalog.Author{ID: "a1", FirstName: "Frank", FamilyName: "Herbert"}))
	require.NoError(t, store.InsertGenre(ctx, &catalog.Genre{ID: "g1", Name: "Science Fiction"}))
	require.NoError(t, store.InsertBook(ctx, &catalog.Book{ID: "b1", Title: "Dune", AuthorID: "a1", GenreIDs: []string{"g1"}}))
	require.NoError(t, store.InsertBookInstance(ctx, &catalog.BookInstance{ID: "c1", BookID: "b1", Imprint: "Ace", Status: catalog.StatusAvailable}))
	require.NoError(t, store.InsertBookInstance(ctx, &catalog.BookInstance{ID: "c2", BookID: "b1", Imprint: "Ace", Status: catalog.StatusLoaned}))
}

/*
TestService_Counts counts every collection and the available copies.
*/
func TestService_Counts(t *testing.T) {
	store := catalog.NewMemoryStore()
	seed(t, store)
	service := summary.NewService(store, nil, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))

	counts, err := service.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, summary.Counts{Books: 1, Authors: 1, Genres: 1, Copies: 2, Available: 1}, *counts)
}

/*
TestService_CacheInvalidation serves cached counts until a write invalidates them.
*/
func TestService_CacheInvalidation(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewMemoryStore()
	seed(t, store)

	memory := cache.NewMemoryCache()
	defer memory.Close()
	service := summary.NewService(store, memory, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// 1. Prime
	counts, err := service.Counts(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, counts.Authors)

	// 2. A write without invalidation is not visible yet
	require.NoError(t, store.InsertAuthor(ctx, &catalog.Author{ID: "a2", FirstName: "Ann", FamilyName: "Leckie"}))
	counts, err = service.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Authors)

	// 3. Invalidation forces a recount
	service.Invalidate(ctx)
	counts, err = service.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Authors)
}

// pausingStore holds the first CountBooks call open after it has read the
// store, until release is closed.
type pausingStore struct {
	*catalog.MemoryStore
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (store *pausingStore) CountBooks(ctx context.Context, filter catalog.BookFilter) (int, error) {
	total, err := store.MemoryStore.CountBooks(ctx, filter)
	store.once.Do(func() {
		close(store.entered)
		<-store.release
	})
	return total, err
}

/*
TestService_InvalidateDuringRecount never serves counts that were read before
a concurrent invalidation.
*/
func TestService_InvalidateDuringRecount(t *testing.T) {
	ctx := context.Background()
	store := &pausingStore{
		MemoryStore: catalog.NewMemoryStore(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}

	memory := cache.NewMemoryCache()
	defer memory.Close()
	service := summary.NewService(store, memory, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// 1. Start a recount and hold it after the books were counted
	type result struct {
		counts *summary.Counts
		err    error
	}
	done := make(chan result, 1)
	go func() {
		counts, err := service.Counts(ctx)
		done <- result{counts, err}
	}()
	<-store.entered

	// 2. Commit a write and invalidate while the recount is in flight
	require.NoError(t, store.InsertBook(ctx, &catalog.Book{ID: "b1", Title: "Dune", AuthorID: "a1"}))
	service.Invalidate(ctx)

	// 3. The in-flight recount finishes with its stale view
	close(store.release)
	stale := <-done
	require.NoError(t, stale.err)
	assert.Equal(t, 0, stale.counts.Books)

	// 4. The next read recounts instead of serving the stale result
	counts, err := service.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Books)
}

func TestHandler_Index(t *testing.T) {
	store := catalog.NewMemoryStore()
	seed(t, store)
	renderer := &view.Recorder{}
	service := summary.NewService(store, nil, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := chi.NewRouter()
	summary.NewHandler(service, renderer).RegisterRoutes(router)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	call := renderer.Last()
	assert.Equal(t, "index", call.Name)
	page := call.Data.(summary.Page)
	assert.Equal(t, 2, page.Counts.Copies)
}

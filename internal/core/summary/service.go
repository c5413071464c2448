package summary

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/internal/platform/cache"
	"github.com/taibuivan/locallibrary/internal/platform/constants"
)

// Counts are the record totals shown on the home page.
type Counts struct {
	Books     int `json:"books"`
	Authors   int `json:"authors"`
	Genres    int `json:"genres"`
	Copies    int `json:"copies"`
	Available int `json:"available"`
}

// Invalidator drops cached counts after a successful write.
type Invalidator interface {
	Invalidate(context context.Context)
}

type Service struct {
	store  catalog.Store
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewService builds the summary service. A nil cache disables caching.
func NewService(store catalog.Store, cache cache.Cache, ttl time.Duration, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = constants.DefaultSummaryTTL
	}
	return &Service{store: store, cache: cache, ttl: ttl, logger: logger}
}

// entry is the cached form of [Counts]. Generation is the invalidation
// counter read before the counts were computed.
type entry struct {
	Generation int64  `json:"generation"`
	Counts     Counts `json:"counts"`
}

/*
Counts returns the catalog totals, from cache when fresh.

Description: On a miss the five counts are fetched concurrently; the first
failure cancels the others. Cache failures are logged and otherwise ignored.

A cached entry is served only while its generation matches the current one,
so counts computed across an [Service.Invalidate] are never served.
*/
func (service *Service) Counts(ctx context.Context) (*Counts, error) {
	// 1. Read the generation before anything is counted
	generation, cacheable := service.generation(ctx)
	if cacheable {
		if cached, ok := service.cached(ctx, generation); ok {
			return cached, nil
		}
	}

	// 2. Recount
	counts := &Counts{}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		counts.Books, err = service.store.CountBooks(groupCtx, catalog.BookFilter{})
		return err
	})
	group.Go(func() (err error) {
		counts.Authors, err = service.store.CountAuthors(groupCtx, catalog.AuthorFilter{})
		return err
	})
	group.Go(func() (err error) {
		counts.Genres, err = service.store.CountGenres(groupCtx, catalog.GenreFilter{})
		return err
	})
	group.Go(func() (err error) {
		counts.Copies, err = service.store.CountBookInstances(groupCtx, catalog.BookInstanceFilter{})
		return err
	})
	group.Go(func() (err error) {
		counts.Available, err = service.store.CountBookInstances(groupCtx, catalog.BookInstanceFilter{Status: catalog.StatusAvailable})
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	// 3. Store under the generation read in step 1
	if cacheable {
		service.remember(ctx, generation, counts)
	}
	return counts, nil
}

/*
Invalidate drops the cached counts. Failures are logged, never returned.

Description: The generation is bumped before the entry is deleted. A recount
that started earlier carries the old generation and is rejected on read even
if it is written after the delete.
*/
func (service *Service) Invalidate(ctx context.Context) {
	if service.cache == nil {
		return
	}
	if _, err := service.cache.Incr(ctx, constants.CacheKeySummaryVersion); err != nil {
		service.logger.WarnContext(ctx, "summary_cache_version_bump_failed", slog.String("error", err.Error()))
	}
	if err := service.cache.Delete(ctx, constants.CacheKeySummary); err != nil {
		service.logger.WarnContext(ctx, "summary_cache_invalidate_failed", slog.String("error", err.Error()))
	}
}

// generation returns the current invalidation counter. The boolean is false
// when caching is disabled or the counter cannot be read.
func (service *Service) generation(ctx context.Context) (int64, bool) {
	if service.cache == nil {
		return 0, false
	}

	raw, ok, err := service.cache.Get(ctx, constants.CacheKeySummaryVersion)
	if err != nil {
		service.logger.WarnContext(ctx, "summary_cache_read_failed", slog.String("error", err.Error()))
		return 0, false
	}
	if !ok {
		return 0, true
	}

	generation, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		service.logger.WarnContext(ctx, "summary_cache_corrupt", slog.String("error", err.Error()))
		return 0, false
	}
	return generation, true
}

func (service *Service) cached(ctx context.Context, generation int64) (*Counts, bool) {
	raw, ok, err := service.cache.Get(ctx, constants.CacheKeySummary)
	if err != nil {
		service.logger.WarnContext(ctx, "summary_cache_read_failed", slog.String("error", err.Error()))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var stored entry
	if err := json.Unmarshal(raw, &stored); err != nil {
		service.logger.WarnContext(ctx, "summary_cache_corrupt", slog.String("error", err.Error()))
		return nil, false
	}
	if stored.Generation != generation {
		return nil, false
	}
	return &stored.Counts, true
}

func (service *Service) remember(ctx context.Context, generation int64, counts *Counts) {
	raw, err := json.Marshal(entry{Generation: generation, Counts: *counts})
	if err != nil {
		return
	}
	if err := service.cache.Set(ctx, constants.CacheKeySummary, raw, service.ttl); err != nil {
		service.logger.WarnContext(ctx, "summary_cache_write_failed", slog.String("error", err.Error()))
	}
}

// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"log/slog"
	"time"

	"github.com/taibuivan/locallibrary/internal/core/author"
	"github.com/taibuivan/locallibrary/internal/core/book"
	"github.com/taibuivan/locallibrary/internal/core/bookinstance"
	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/internal/core/genre"
	"github.com/taibuivan/locallibrary/internal/core/integrity"
	"github.com/taibuivan/locallibrary/internal/core/summary"
	"github.com/taibuivan/locallibrary/internal/platform/cache"
	"github.com/taibuivan/locallibrary/internal/platform/view"
)

// CatalogDependencies is everything the catalog handler sets are built from.
type CatalogDependencies struct {
	Store      catalog.Store
	Cache      cache.Cache
	SummaryTTL time.Duration
	Views      view.Renderer
	Logger     *slog.Logger
}

// NewCatalogHandlers builds every catalog service and handler set over one
// store. Liveness and Readiness are left for the caller.
func NewCatalogHandlers(deps CatalogDependencies) Handlers {
	guard := integrity.NewGuard(deps.Store, deps.Store)
	counts := summary.NewService(deps.Store, deps.Cache, deps.SummaryTTL, deps.Logger)

	return Handlers{
		Home:          summary.NewHandler(counts, deps.Views),
		Authors:       author.NewHandler(author.NewService(deps.Store, guard, counts, deps.Logger), deps.Views),
		Genres:        genre.NewHandler(genre.NewService(deps.Store, guard, counts, deps.Logger), deps.Views),
		Books:         book.NewHandler(book.NewService(deps.Store, guard, counts, deps.Logger), deps.Views),
		BookInstances: bookinstance.NewHandler(bookinstance.NewService(deps.Store, counts, deps.Logger), deps.Views),
		Views:         deps.Views,
	}
}

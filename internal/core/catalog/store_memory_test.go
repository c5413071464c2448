// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
)

/*
TestMemoryStore_Authors exercises the full author lifecycle.
*/
func TestMemoryStore_Authors(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewMemoryStore()

	// 1. Insert stamps timestamps
	tolkien := &catalog.Author{ID: "a2", FirstName: "John", FamilyName: "Tolkien"}
	require.NoError(t, store.InsertAuthor(ctx, tolkien))
	assert.False(t, tolkien.CreatedAt.IsZero())
	require.NoError(t, store.InsertAuthor(ctx, &catalog.Author{ID: "a1", FirstName: "Ben", FamilyName: "bova"}))

	// 2. Duplicate ids are rejected
	err := store.InsertAuthor(ctx, &catalog.Author{ID: "a1"})
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// 3. Lists are sorted case-insensitively by family name
	authors, err := store.FindAuthors(ctx, catalog.AuthorFilter{})
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "bova", authors[0].FamilyName)
	assert.Equal(t, "Tolkien", authors[1].FamilyName)

	// 4. Update replaces fields and keeps creation time
	created := tolkien.CreatedAt
	tolkien.FirstName = "J"
	require.NoError(t, store.UpdateAuthor(ctx, tolkien))
	found, err := store.FindAuthorByID(ctx, "a2")
	require.NoError(t, err)
	assert.Equal(t, "J", found.FirstName)
	assert.Equal(t, created, found.CreatedAt)

	// 5. Delete and miss
	require.NoError(t, store.DeleteAuthor(ctx, "a2"))
	_, err = store.FindAuthorByID(ctx, "a2")
	assert.True(t, apperr.IsNotFound(err))
	assert.True(t, apperr.IsNotFound(store.DeleteAuthor(ctx, "a2")))
	assert.True(t, apperr.IsNotFound(store.UpdateAuthor(ctx, &catalog.Author{ID: "missing"})))
}

/*
TestMemoryStore_Isolation verifies that callers never alias stored state.
*/
func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewMemoryStore()

	book := &catalog.Book{ID: "b1", Title: "Dune", AuthorID: "a1", GenreIDs: []string{"g1"}}
	require.NoError(t, store.InsertBook(ctx, book))

	// Mutating the inserted value must not leak in
	book.GenreIDs[0] = "changed"

	found, err := store.FindBookByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, []string{"g1"}, found.GenreIDs)

	// Mutating a returned value must not leak in either
	found.Title = "changed"
	again, err := store.FindBookByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Dune", again.Title)
}

/*
TestMemoryStore_Filters covers the relation filters used by guards and detail views.
*/
func TestMemoryStore_Filters(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewMemoryStore()

	require.NoError(t, store.InsertGenre(ctx, &catalog.Genre{ID: "g1", Name: "Fantasy"}))
	require.NoError(t, store.InsertGenre(ctx, &catalog.Genre{ID: "g2", Name: "Adventure"}))
	require.NoError(t, store.InsertBook(ctx, &catalog.Book{ID: "b1", Title: "Hobbit", AuthorID: "a1", GenreIDs: []string{"g1", "g2"}}))
	require.NoError(t, store.InsertBook(ctx, &catalog.Book{ID: "b2", Title: "Dune", AuthorID: "a2", GenreIDs: []string{"g2"}}))
	require.NoError(t, store.InsertBookInstance(ctx, &catalog.BookInstance{ID: "c1", BookID: "b1", Imprint: "Allen", Status: catalog.StatusAvailable}))
	require.NoError(t, store.InsertBookInstance(ctx, &catalog.BookInstance{ID: "c2", BookID: "b1", Imprint: "Harper", Status: catalog.StatusLoaned}))

	tests := []struct {
		name  string
		count func() (int, error)
		want  int
	}{
		{"books_by_author", func() (int, error) { return store.CountBooks(ctx, catalog.BookFilter{AuthorID: "a1"}) }, 1},
		{"books_by_genre", func() (int, error) { return store.CountBooks(ctx, catalog.BookFilter{GenreID: "g2"}) }, 2},
		{"books_by_ids", func() (int, error) { return store.CountBooks(ctx, catalog.BookFilter{IDs: []string{"b2", "zz"}}) }, 1},
		{"genres_by_folded_name", func() (int, error) { return store.CountGenres(ctx, catalog.GenreFilter{NameKey: "fantasy"}) }, 1},
		{"genres_of_book", func() (int, error) { return store.CountGenres(ctx, catalog.GenreFilter{BookID: "b2"}) }, 1},
		{"genres_of_missing_book", func() (int, error) { return store.CountGenres(ctx, catalog.GenreFilter{BookID: "nope"}) }, 0},
		{"copies_of_book", func() (int, error) { return store.CountBookInstances(ctx, catalog.BookInstanceFilter{BookID: "b1"}) }, 2},
		{"available_copies", func() (int, error) {
			return store.CountBookInstances(ctx, catalog.BookInstanceFilter{Status: catalog.StatusAvailable})
		}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.count()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	genres, err := store.FindGenres(ctx, catalog.GenreFilter{BookID: "b1"})
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, "Adventure", genres[0].Name, "sorted by name")
}

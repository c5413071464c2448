// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package integrity answers the question "may this entity be deleted?".

An entity may be removed only while nothing references it: an author with no
books, a genre attached to no book, a book with no physical copies. Copies
themselves are never referenced and are not guarded.

The check and the delete are not atomic. Storage foreign keys reject a delete
that loses the race, and the error surfaces as a CONFLICT.
*/
package integrity

import (
	"context"
	"fmt"

	"github.com/taibuivan/locallibrary/internal/core/catalog"
)

// Verdict lists the dependents that block a deletion.
type Verdict struct {
	Books  []*catalog.Book
	Copies []*catalog.BookInstance
}

// Allowed reports whether nothing references the entity.
func (v Verdict) Allowed() bool {
	return len(v.Books) == 0 && len(v.Copies) == 0
}

// Guard inspects reverse references through the store.
type Guard struct {
	books     catalog.BookStore
	instances catalog.BookInstanceStore
}

// NewGuard constructs a [Guard] over the book and copy collections.
func NewGuard(books catalog.BookStore, instances catalog.BookInstanceStore) *Guard {
	return &Guard{books: books, instances: instances}
}

// CanDeleteAuthor returns the books written by the author.
func (g *Guard) CanDeleteAuthor(ctx context.Context, authorID string) (Verdict, error) {
	books, err := g.books.FindBooks(ctx, catalog.BookFilter{AuthorID: authorID})
	if err != nil {
		return Verdict{}, fmt.Errorf("integrity: author dependents: %w", err)
	}
	return Verdict{Books: books}, nil
}

// CanDeleteGenre returns the books carrying the genre.
func (g *Guard) CanDeleteGenre(ctx context.Context, genreID string) (Verdict, error) {
	books, err := g.books.FindBooks(ctx, catalog.BookFilter{GenreID: genreID})
	if err != nil {
		return Verdict{}, fmt.Errorf("integrity: genre dependents: %w", err)
	}
	return Verdict{Books: books}, nil
}

// CanDeleteBook returns the physical copies of the book.
func (g *Guard) CanDeleteBook(ctx context.Context, bookID string) (Verdict, error) {
	copies, err := g.instances.FindBookInstances(ctx, catalog.BookInstanceFilter{BookID: bookID})
	if err != nil {
		return Verdict{}, fmt.Errorf("integrity: book dependents: %w", err)
	}
	return Verdict{Copies: copies}, nil
}

// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "context"

// # Catalog Data Access

// Store is the Entity Store Adapter: one typed collection per entity.
//
// Every Find* returns entities owned by the caller; mutating them never
// changes stored state. Lookups by id return an apperr NOT_FOUND error when
// the id resolves to nothing, and so do Update* and Delete* on a missing id.
type Store interface {
	AuthorStore
	GenreStore
	BookStore
	BookInstanceStore
}

// AuthorStore is the data access contract for authors.
type AuthorStore interface {

	/*
		FindAuthorByID returns the author with the given id.

		Returns:
		  - *Author: The stored author
		  - error: NOT_FOUND if missing, Internal on storage failure
	*/
	FindAuthorByID(context context.Context, id string) (*Author, error)

	// FindAuthors returns matching authors sorted by family name, then first name.
	FindAuthors(context context.Context, filter AuthorFilter) ([]*Author, error)

	// CountAuthors returns the number of matching authors.
	CountAuthors(context context.Context, filter AuthorFilter) (int, error)

	// InsertAuthor persists a new author. The caller assigns the id.
	InsertAuthor(context context.Context, author *Author) error

	// UpdateAuthor replaces every mutable field of an existing author.
	UpdateAuthor(context context.Context, author *Author) error

	// DeleteAuthor removes an author by id.
	DeleteAuthor(context context.Context, id string) error
}

// GenreStore is the data access contract for genres.
type GenreStore interface {
	FindGenreByID(context context.Context, id string) (*Genre, error)

	/*
		FindGenres returns matching genres sorted by name.

		Parameters:
		  - context: context.Context
		  - filter: GenreFilter (ids, folded name key, or owning book)

		Returns:
		  - []*Genre: Matching genres, empty when nothing matches
		  - error: Storage failures
	*/
	FindGenres(context context.Context, filter GenreFilter) ([]*Genre, error)

	CountGenres(context context.Context, filter GenreFilter) (int, error)
	InsertGenre(context context.Context, genre *Genre) error
	UpdateGenre(context context.Context, genre *Genre) error
	DeleteGenre(context context.Context, id string) error
}

// BookStore is the data access contract for books.
//
// A book's genre set is written together with the book row: a reader never
// observes a book with a partially written genre set.
type BookStore interface {
	FindBookByID(context context.Context, id string) (*Book, error)

	// FindBooks returns matching books sorted by title.
	FindBooks(context context.Context, filter BookFilter) ([]*Book, error)

	CountBooks(context context.Context, filter BookFilter) (int, error)
	InsertBook(context context.Context, book *Book) error
	UpdateBook(context context.Context, book *Book) error
	DeleteBook(context context.Context, id string) error
}

// BookInstanceStore is the data access contract for physical copies.
type BookInstanceStore interface {
	FindBookInstanceByID(context context.Context, id string) (*BookInstance, error)

	// FindBookInstances returns matching copies sorted by imprint.
	FindBookInstances(context context.Context, filter BookInstanceFilter) ([]*BookInstance, error)

	CountBookInstances(context context.Context, filter BookInstanceFilter) (int, error)
	InsertBookInstance(context context.Context, instance *BookInstance) error
	UpdateBookInstance(context context.Context, instance *BookInstance) error
	DeleteBookInstance(context context.Context, id string) error
}

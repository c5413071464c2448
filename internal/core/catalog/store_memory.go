// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/pkg/fold"
)

// MemoryStore is a process-local [Store]. It backs the test suites and the
// `STORE_DRIVER=memory` development mode; nothing survives a restart.
//
// # Concurrency
//
// All collections share one RWMutex. Entities are cloned on the way in and on
// the way out, so callers can never alias stored state.
type MemoryStore struct {
	mu        sync.RWMutex
	now       func() time.Time
	authors   map[string]*Author
	genres    map[string]*Genre
	books     map[string]*Book
	instances map[string]*BookInstance
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:       func() time.Time { return time.Now().UTC() },
		authors:   make(map[string]*Author),
		genres:    make(map[string]*Genre),
		books:     make(map[string]*Book),
		instances: make(map[string]*BookInstance),
	}
}

// # Authors

func (store *MemoryStore) FindAuthorByID(_ context.Context, id string) (*Author, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	author, ok := store.authors[id]
	if !ok {
		return nil, apperr.NotFound("Author")
	}
	return author.Clone(), nil
}

func (store *MemoryStore) FindAuthors(_ context.Context, filter AuthorFilter) ([]*Author, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	authors := make([]*Author, 0, len(store.authors))
	for _, author := range store.authors {
		if filter.IDs != nil && !contains(filter.IDs, author.ID) {
			continue
		}
		authors = append(authors, author.Clone())
	}

	sort.Slice(authors, func(i, j int) bool {
		return less(
			[]string{authors[i].FamilyName, authors[i].FirstName, authors[i].ID},
			[]string{authors[j].FamilyName, authors[j].FirstName, authors[j].ID},
		)
	})
	return authors, nil
}

func (store *MemoryStore) CountAuthors(context context.Context, filter AuthorFilter) (int, error) {
	authors, err := store.FindAuthors(context, filter)
	return len(authors), err
}

func (store *MemoryStore) InsertAuthor(_ context.Context, author *Author) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, exists := store.authors[author.ID]; exists {
		return apperr.Conflict("Author already exists", nil)
	}
	author.CreatedAt = store.now()
	author.UpdatedAt = author.CreatedAt
	store.authors[author.ID] = author.Clone()
	return nil
}

func (store *MemoryStore) UpdateAuthor(_ context.Context, author *Author) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	existing, ok := store.authors[author.ID]
	if !ok {
		return apperr.NotFound("Author")
	}
	author.CreatedAt = existing.CreatedAt
	author.UpdatedAt = store.now()
	store.authors[author.ID] = author.Clone()
	return nil
}

func (store *MemoryStore) DeleteAuthor(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.authors[id]; !ok {
		return apperr.NotFound("Author")
	}
	delete(store.authors, id)
	return nil
}

// # Genres

func (store *MemoryStore) FindGenreByID(_ context.Context, id string) (*Genre, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	genre, ok := store.genres[id]
	if !ok {
		return nil, apperr.NotFound("Genre")
	}
	return genre.Clone(), nil
}

func (store *MemoryStore) FindGenres(_ context.Context, filter GenreFilter) ([]*Genre, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	var owner *Book
	if filter.BookID != "" {
		owner = store.books[filter.BookID]
		if owner == nil {
			return []*Genre{}, nil
		}
	}

	genres := make([]*Genre, 0, len(store.genres))
	for _, genre := range store.genres {
		if filter.IDs != nil && !contains(filter.IDs, genre.ID) {
			continue
		}
		if filter.NameKey != "" && fold.Key(genre.Name) != filter.NameKey {
			continue
		}
		if owner != nil && !owner.HasGenre(genre.ID) {
			continue
		}
		genres = append(genres, genre.Clone())
	}

	sort.Slice(genres, func(i, j int) bool {
		return less([]string{genres[i].Name, genres[i].ID}, []string{genres[j].Name, genres[j].ID})
	})
	return genres, nil
}

func (store *MemoryStore) CountGenres(context context.Context, filter GenreFilter) (int, error) {
	genres, err := store.FindGenres(context, filter)
	return len(genres), err
}

func (store *MemoryStore) InsertGenre(_ context.Context, genre *Genre) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, exists := store.genres[genre.ID]; exists {
		return apperr.Conflict("Genre already exists", nil)
	}
	genre.CreatedAt = store.now()
	genre.UpdatedAt = genre.CreatedAt
	store.genres[genre.ID] = genre.Clone()
	return nil
}

func (store *MemoryStore) UpdateGenre(_ context.Context, genre *Genre) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	existing, ok := store.genres[genre.ID]
	if !ok {
		return apperr.NotFound("Genre")
	}
	genre.CreatedAt = existing.CreatedAt
	genre.UpdatedAt = store.now()
	store.genres[genre.ID] = genre.Clone()
	return nil
}

func (store *MemoryStore) DeleteGenre(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.genres[id]; !ok {
		return apperr.NotFound("Genre")
	}
	delete(store.genres, id)
	return nil
}

// # Books

func (store *MemoryStore) FindBookByID(_ context.Context, id string) (*Book, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	book, ok := store.books[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	return book.Clone(), nil
}

func (store *MemoryStore) FindBooks(_ context.Context, filter BookFilter) ([]*Book, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	books := make([]*Book, 0, len(store.books))
	for _, book := range store.books {
		if filter.IDs != nil && !contains(filter.IDs, book.ID) {
			continue
		}
		if filter.AuthorID != "" && book.AuthorID != filter.AuthorID {
			continue
		}
		if filter.GenreID != "" && !book.HasGenre(filter.GenreID) {
			continue
		}
		books = append(books, book.Clone())
	}

	sort.Slice(books, func(i, j int) bool {
		return less([]string{books[i].Title, books[i].ID}, []string{books[j].Title, books[j].ID})
	})
	return books, nil
}

func (store *MemoryStore) CountBooks(context context.Context, filter BookFilter) (int, error) {
	books, err := store.FindBooks(context, filter)
	return len(books), err
}

func (store *MemoryStore) InsertBook(_ context.Context, book *Book) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, exists := store.books[book.ID]; exists {
		return apperr.Conflict("Book already exists", nil)
	}
	book.CreatedAt = store.now()
	book.UpdatedAt = book.CreatedAt
	store.books[book.ID] = book.Clone()
	return nil
}

func (store *MemoryStore) UpdateBook(_ context.Context, book *Book) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	existing, ok := store.books[book.ID]
	if !ok {
		return apperr.NotFound("Book")
	}
	book.CreatedAt = existing.CreatedAt
	book.UpdatedAt = store.now()
	store.books[book.ID] = book.Clone()
	return nil
}

func (store *MemoryStore) DeleteBook(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.books[id]; !ok {
		return apperr.NotFound("Book")
	}
	delete(store.books, id)
	return nil
}

// # Book Instances

func (store *MemoryStore) FindBookInstanceByID(_ context.Context, id string) (*BookInstance, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	instance, ok := store.instances[id]
	if !ok {
		return nil, apperr.NotFound("Book copy")
	}
	return instance.Clone(), nil
}

func (store *MemoryStore) FindBookInstances(_ context.Context, filter BookInstanceFilter) ([]*BookInstance, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	instances := make([]*BookInstance, 0, len(store.instances))
	for _, instance := range store.instances {
		if filter.BookID != "" && instance.BookID != filter.BookID {
			continue
		}
		if filter.Status != "" && instance.Status != filter.Status {
			continue
		}
		instances = append(instances, instance.Clone())
	}

	sort.Slice(instances, func(i, j int) bool {
		return less([]string{instances[i].Imprint, instances[i].ID}, []string{instances[j].Imprint, instances[j].ID})
	})
	return instances, nil
}

func (store *MemoryStore) CountBookInstances(context context.Context, filter BookInstanceFilter) (int, error) {
	instances, err := store.FindBookInstances(context, filter)
	return len(instances), err
}

func (store *MemoryStore) InsertBookInstance(_ context.Context, instance *BookInstance) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, exists := store.instances[instance.ID]; exists {
		return apperr.Conflict("Book copy already exists", nil)
	}
	instance.CreatedAt = store.now()
	instance.UpdatedAt = instance.CreatedAt
	store.instances[instance.ID] = instance.Clone()
	return nil
}

func (store *MemoryStore) UpdateBookInstance(_ context.Context, instance *BookInstance) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	existing, ok := store.instances[instance.ID]
	if !ok {
		return apperr.NotFound("Book copy")
	}
	instance.CreatedAt = existing.CreatedAt
	instance.UpdatedAt = store.now()
	store.instances[instance.ID] = instance.Clone()
	return nil
}

func (store *MemoryStore) DeleteBookInstance(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.instances[id]; !ok {
		return apperr.NotFound("Book copy")
	}
	delete(store.instances, id)
	return nil
}

// # Helpers

// contains reports whether ids holds id.
func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// less compares two sort keys case-insensitively, key part by key part.
func less(a, b []string) bool {
	for i := range a {
		x, y := strings.ToLower(a[i]), strings.ToLower(b[i])
		if x != y {
			return x < y
		}
	}
	return false
}

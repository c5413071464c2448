// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "time"

// Book is a catalogued title. It references exactly one [Author] and any
// number of [Genre] records.
type Book struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	ISBN     string   `json:"isbn"`
	AuthorID string   `json:"author_id"`
	GenreIDs []string `json:"genre_ids"`

	// Author is resolved by services for list and detail views; stores leave it nil.
	Author *Author `json:"author,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Form field names of the book forms (wire contract).
const (
	FieldTitle   = "title"
	FieldAuthor  = "author"
	FieldSummary = "summary"
	FieldISBN    = "isbn"
	FieldGenre   = "genre"
)

// URL is the path of the book's detail view.
func (b *Book) URL() string { return "/books/" + b.ID }

// HasGenre reports whether the book references the genre id.
func (b *Book) HasGenre(id string) bool {
	for _, g := range b.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the book, without the resolved author.
func (b *Book) Clone() *Book {
	c := *b
	c.GenreIDs = append([]string{}, b.GenreIDs...)
	c.Author = nil
	return &c
}

// BookFilter narrows a book query. The zero value matches every book.
type BookFilter struct {
	IDs      []string
	AuthorID string
	GenreID  string
}

// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"time"

	"github.com/taibuivan/locallibrary/pkg/fold"
)

// Genre is a shared lookup value attached to books.
//
// No two genres may have the same folded name; the rule is enforced when
// genres are written, not by storage.
type Genre struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FieldGenreName is the form field name of the genre form (wire contract).
const FieldGenreName = "name"

// NameKey returns the folded name used for duplicate detection.
func (g *Genre) NameKey() string { return fold.Key(g.Name) }

// URL is the path of the genre's detail view.
func (g *Genre) URL() string { return "/genres/" + g.ID }

// Clone returns a copy of the genre.
func (g *Genre) Clone() *Genre {
	c := *g
	return &c
}

// GenreFilter narrows a genre query. The zero value matches every genre.
type GenreFilter struct {
	// IDs restricts the result to the given ids.
	IDs []string
	// NameKey matches genres whose folded name equals the key.
	NameKey string
	// BookID matches the genres attached to one book.
	BookID string
}

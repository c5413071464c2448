package book

import (
	"net/url"
	"strings"

	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/pkg/slice"
)

// GenreOption is one checkbox of the book form. It is built fresh for every
// render; the genres returned by the store are never modified.
type GenreOption struct {
	ID      string
	Name    string
	Checked bool
}

/*
Normalize turns a raw multi-select into a canonical id sequence.

Description: Absent input yields an empty, non-nil slice. Values are trimmed,
blanks dropped and duplicates removed, keeping the first occurrence order.
*/
func Normalize(raw []string) []string {
	ids := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, value := range raw {
		id := strings.TrimSpace(value)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// genreInput collects the genre selection under both accepted field names.
func genreInput(input url.Values) []string {
	raw := make([]string, 0, len(input[catalog.FieldGenre])+len(input[catalog.FieldGenre+"[]"]))
	raw = append(raw, input[catalog.FieldGenre]...)
	raw = append(raw, input[catalog.FieldGenre+"[]"]...)
	return Normalize(raw)
}

// Annotate marks the candidates that appear in selected.
func Annotate(candidates []*catalog.Genre, selected []string) []GenreOption {
	chosen := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		chosen[id] = struct{}{}
	}

	return slice.Map(candidates, func(genre *catalog.Genre) GenreOption {
		_, checked := chosen[genre.ID]
		return GenreOption{ID: genre.ID, Name: genre.Name, Checked: checked}
	})
}

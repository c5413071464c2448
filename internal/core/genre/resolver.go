package genre

import (
	"context"

	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/pkg/fold"
)

// Resolver finds the existing genre a submitted name duplicates.
//
// Two names are the same genre when their folded keys match: "Fantasy",
// "FANTASY" and "Fántasy" all resolve to one another. Resolution is a
// point-in-time read; two concurrent submissions can both miss and both insert.
type Resolver struct {
	genres catalog.GenreStore
}

func NewResolver(genres catalog.GenreStore) *Resolver {
	return &Resolver{genres: genres}
}

/*
Resolve returns the canonical genre for name, ignoring the genre with id
except (the genre being edited), or nil when there is none.

Parameters:
  - ctx: context.Context
  - name: string (Submitted, already validated name)
  - except: string (Id to skip; empty on create)

Returns:
  - *catalog.Genre: The existing genre, or nil
  - error: Storage failures
*/
func (resolver *Resolver) Resolve(ctx context.Context, name, except string) (*catalog.Genre, error) {
	key := fold.Key(name)
	if key == "" {
		return nil, nil
	}

	matches, err := resolver.genres.FindGenres(ctx, catalog.GenreFilter{NameKey: key})
	if err != nil {
		return nil, err
	}

	for _, match := range matches {
		if match.ID != except {
			return match, nil
		}
	}
	return nil, nil
}

package genre_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/internal/core/genre"
)

/*
TestResolver_Resolve matches names regardless of case and accents.
*/
func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewMemoryStore()
	require.NoError(t, store.InsertGenre(ctx, &catalog.Genre{ID: "g1", Name: "Fantasy"}))
	require.NoError(t, store.InsertGenre(ctx, &catalog.Genre{ID: "g2", Name: "Science Fiction"}))
	resolver := genre.NewResolver(store)

	tests := []struct {
		name   string
		input  string
		except string
		want   string
	}{
		{"exact", "Fantasy", "", "g1"},
		{"upper", "FANTASY", "", "g1"},
		{"accented", "fántasy", "", "g1"},
		{"inner_whitespace", "science   fiction", "", "g2"},
		{"no_match", "Poetry", "", ""},
		{"self_excluded", "FANTASY", "g1", ""},
		{"other_not_excluded", "Fantasy", "g2", "g1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := resolver.Resolve(ctx, tt.input, tt.except)
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, match)
				return
			}
			require.NotNil(t, match)
			assert.Equal(t, tt.want, match.ID)
		})
	}
}

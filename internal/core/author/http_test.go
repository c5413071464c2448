package author_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/core/author"
	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/internal/core/integrity"
	"github.com/taibuivan/locallibrary/internal/core/summary"
	"github.com/taibuivan/locallibrary/internal/platform/view"
)

type fixture struct {
	store    *catalog.MemoryStore
	renderer *view.Recorder
	router   chi.Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := catalog.NewMemoryStore()
	renderer := &view.Recorder{}

	service := author.NewService(store, integrity.NewGuard(store, store), summary.NewService(store, nil, 0, logger), logger)
	router := chi.NewRouter()
	router.Route("/authors", author.NewHandler(service, renderer).RegisterRoutes)

	return &fixture{store: store, renderer: renderer, router: router}
}

func (f *fixture) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	request := httptest.NewRequest(method, target, body)
	if form != nil {
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, request)
	return recorder
}

func (f *fixture) count(t *testing.T) int {
	t.Helper()
	total, err := f.store.CountAuthors(context.Background(), catalog.AuthorFilter{})
	require.NoError(t, err)
	return total
}

/*
TestCreate_Valid persists the author and redirects to its detail page.
*/
func TestCreate_Valid(t *testing.T) {
	f := newFixture(t)

	response := f.do(http.MethodPost, "/authors/create", url.Values{
		"first_name":    {" Patrick "},
		"family_name":   {"Rothfuss"},
		"date_of_birth": {"1973-06-06"},
		"date_of_death": {""},
	})

	require.Equal(t, http.StatusSeeOther, response.Code)
	authors, err := f.store.FindAuthors(context.Background(), catalog.AuthorFilter{})
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "/authors/"+authors[0].ID, response.Header().Get("Location"))
	assert.Equal(t, "Patrick", authors[0].FirstName)
	require.NotNil(t, authors[0].DateOfBirth)
	assert.Nil(t, authors[0].DateOfDeath)
}

/*
TestCreate_Invalid redisplays the form with errors and writes nothing.
*/
func TestCreate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		form   url.Values
		fields []string
	}{
		{"non_alphanumeric_family", url.Values{"first_name": {"Ursula"}, "family_name": {"Le Guin"}}, []string{"family_name"}},
		{"non_alphanumeric_first", url.Values{"first_name": {"J.R.R."}, "family_name": {"Tolkien"}}, []string{"first_name"}},
		{"missing_both", url.Values{}, []string{"first_name", "family_name"}},
		{"bad_date", url.Values{"first_name": {"Ann"}, "family_name": {"Leckie"}, "date_of_death": {"yesterday"}}, []string{"date_of_death"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			response := f.do(http.MethodPost, "/authors/create", tt.form)

			require.Equal(t, http.StatusOK, response.Code)
			call := f.renderer.Last()
			require.Equal(t, "author_form", call.Name)
			form := call.Data.(view.Form)
			require.Len(t, form.Errors, len(tt.fields))
			for i, field := range tt.fields {
				assert.Equal(t, field, form.Errors[i].Field)
			}
			assert.Equal(t, 0, f.count(t))
		})
	}
}

/*
TestUpdate replaces the stored fields, and rejects invalid edits without writing.
*/
func TestUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.InsertAuthor(ctx, &catalog.Author{ID: "a1", FirstName: "Isaac", FamilyName: "Asimov"}))

	// 1. Pre-populated form
	response := f.do(http.MethodGet, "/authors/a1/update", nil)
	require.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "Asimov", f.renderer.Last().Data.(view.Form).Value("family_name"))

	// 2. Invalid edit
	response = f.do(http.MethodPost, "/authors/a1/update", url.Values{"first_name": {"Isaac"}, "family_name": {"Asi mov"}})
	require.Equal(t, http.StatusOK, response.Code)
	stored, err := f.store.FindAuthorByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Asimov", stored.FamilyName)

	// 3. Valid edit
	response = f.do(http.MethodPost, "/authors/a1/update", url.Values{"first_name": {"Isaac"}, "family_name": {"Azimov"}, "date_of_birth": {"1920-01-02"}})
	require.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/authors/a1", response.Header().Get("Location"))
	stored, err = f.store.FindAuthorByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Azimov", stored.FamilyName)
	assert.Equal(t, "Jan 2, 1920 -", stored.Lifespan())

	// 4. Unknown id
	response = f.do(http.MethodPost, "/authors/nope/update", url.Values{"first_name": {"A"}, "family_name": {"B"}})
	assert.Equal(t, http.StatusNotFound, response.Code)
}

func TestDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.InsertAuthor(ctx, &catalog.Author{ID: "a1", FirstName: "Frank", FamilyName: "Herbert"}))
	require.NoError(t, f.store.InsertBook(ctx, &catalog.Book{ID: "b1", Title: "Dune", AuthorID: "a1"}))

	response := f.do(http.MethodGet, "/authors/a1", nil)
	require.Equal(t, http.StatusOK, response.Code)
	page := f.renderer.Last().Data.(author.DetailPage)
	assert.Equal(t, "a1", page.Author.ID)
	require.Len(t, page.Books, 1)

	response = f.do(http.MethodGet, "/authors/missing", nil)
	assert.Equal(t, http.StatusNotFound, response.Code)
	assert.Equal(t, "error", f.renderer.Last().Name)
}

/*
TestDelete_GuardedByBooks blocks deletion until the author's last book is gone.
*/
func TestDelete_GuardedByBooks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.InsertAuthor(ctx, &catalog.Author{ID: "a1", FirstName: "Frank", FamilyName: "Herbert"}))
	require.NoError(t, f.store.InsertBook(ctx, &catalog.Book{ID: "b1", Title: "Dune", AuthorID: "a1"}))

	// 1. Confirmation lists the blockers
	response := f.do(http.MethodGet, "/authors/a1/delete", nil)
	require.Equal(t, http.StatusOK, response.Code)
	page := f.renderer.Last().Data.(author.DeletePage)
	assert.Len(t, page.Books, 1)

	// 2. Blocked POST changes nothing
	response = f.do(http.MethodPost, "/authors/a1/delete", url.Values{"author_id": {"a1"}})
	require.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "author_delete", f.renderer.Last().Name)
	assert.Equal(t, 1, f.count(t))
	_, err := f.store.FindBookByID(ctx, "b1")
	require.NoError(t, err)

	// 3. Once the book is gone the delete goes through
	require.NoError(t, f.store.DeleteBook(ctx, "b1"))
	response = f.do(http.MethodPost, "/authors/a1/delete", url.Values{"author_id": {"a1"}})
	require.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/authors", response.Header().Get("Location"))
	assert.Equal(t, 0, f.count(t))
}

/*
TestDelete_BodyIDWins acts on the posted id rather than the URL id.
*/
func TestDelete_BodyIDWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.InsertAuthor(ctx, &catalog.Author{ID: "a1", FirstName: "Keep", FamilyName: "Me"}))
	require.NoError(t, f.store.InsertAuthor(ctx, &catalog.Author{ID: "a2", FirstName: "Drop", FamilyName: "Me"}))

	response := f.do(http.MethodPost, "/authors/a1/delete", url.Values{"author_id": {"a2"}})
	require.Equal(t, http.StatusSeeOther, response.Code)

	_, err := f.store.FindAuthorByID(ctx, "a1")
	assert.NoError(t, err)
	_, err = f.store.FindAuthorByID(ctx, "a2")
	assert.Error(t, err)
}

func TestDelete_MissingRedirectsToList(t *testing.T) {
	f := newFixture(t)

	response := f.do(http.MethodGet, "/authors/ghost/delete", nil)
	assert.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/authors", response.Header().Get("Location"))
}

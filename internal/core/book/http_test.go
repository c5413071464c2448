package book_test

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

	"github.com/taibuivan/locallibrary/internal/core/book"
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
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := catalog.NewMemoryStore()
	renderer := &view.Recorder{}

	service := book.NewService(store, integrity.NewGuard(store, store), summary.NewService(store, nil, 0, logger), logger)
	router := chi.NewRouter()
	router.Route("/books", book.NewHandler(service, renderer).RegisterRoutes)

	require.NoError(t, store.InsertAuthor(ctx, &catalog.Author{ID: "a1", FirstName: "John", FamilyName: "Tolkien"}))
	require.NoError(t, store.InsertGenre(ctx, &catalog.Genre{ID: "fantasy", Name: "Fantasy"}))
	require.NoError(t, store.InsertGenre(ctx, &catalog.Genre{ID: "adventure", Name: "Adventure"}))
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
	total, err := f.store.CountBooks(context.Background(), catalog.BookFilter{})
	require.NoError(t, err)
	return total
}

func validForm() url.Values {
	return url.Values{
		"title":   {"The Hobbit"},
		"author":  {"a1"},
		"summary": {"There and back again."},
		"isbn":    {"9780261102217"},
	}
}

/*
TestCreate_EmptyTitle reports one error on title and echoes everything else.
*/
func TestCreate_EmptyTitle(t *testing.T) {
	f := newFixture(t)
	form := validForm()
	form.Set("title", "   ")
	form["genre"] = []string{"fantasy"}

	response := f.do(http.MethodPost, "/books/create", form)

	require.Equal(t, http.StatusOK, response.Code)
	call := f.renderer.Last()
	require.Equal(t, "book_form", call.Name)
	page := call.Data.(book.FormPage)
	require.Len(t, page.Errors, 1)
	assert.Equal(t, "title", page.Errors[0].Field)
	assert.Equal(t, "a1", page.Value("author"))
	assert.Equal(t, "There and back again.", page.Value("summary"))
	assert.Len(t, page.Authors, 1)
	require.Len(t, page.Genres, 2)
	assert.Equal(t, book.GenreOption{ID: "fantasy", Name: "Fantasy", Checked: true}, page.Genres[1])
	assert.Equal(t, 0, f.count(t))
}

func TestCreate_UnknownAuthor(t *testing.T) {
	f := newFixture(t)
	form := validForm()
	form.Set("author", "ghost")

	response := f.do(http.MethodPost, "/books/create", form)

	require.Equal(t, http.StatusOK, response.Code)
	page := f.renderer.Last().Data.(book.FormPage)
	require.Len(t, page.Errors, 1)
	assert.Equal(t, "author", page.Errors[0].Field)
	assert.Equal(t, "Author not found", page.Errors[0].Message)
	assert.Equal(t, 0, f.count(t))
}

/*
TestCreate_GenreSelection accepts both field spellings and drops unknown ids.
*/
func TestCreate_GenreSelection(t *testing.T) {
	f := newFixture(t)
	form := validForm()
	form["genre"] = []string{"adventure", "ghost"}
	form["genre[]"] = []string{"fantasy", "adventure"}

	response := f.do(http.MethodPost, "/books/create", form)

	require.Equal(t, http.StatusSeeOther, response.Code)
	books, err := f.store.FindBooks(context.Background(), catalog.BookFilter{})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "/books/"+books[0].ID, response.Header().Get("Location"))
	assert.Equal(t, []string{"adventure", "fantasy"}, books[0].GenreIDs)
}

/*
TestUpdate_ReplacesGenreSet grows {Fantasy} to {Fantasy, Adventure} in place.
*/
func TestUpdate_ReplacesGenreSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.InsertBook(ctx, &catalog.Book{
		ID: "b1", Title: "The Hobbit", AuthorID: "a1", Summary: "s", ISBN: "i", GenreIDs: []string{"fantasy"},
	}))

	// 1. Update form shows the stored selection
	response := f.do(http.MethodGet, "/books/b1/update", nil)
	require.Equal(t, http.StatusOK, response.Code)
	page := f.renderer.Last().Data.(book.FormPage)
	assert.Equal(t, "The Hobbit", page.Value("title"))
	assert.False(t, page.Genres[0].Checked, "adventure")
	assert.True(t, page.Genres[1].Checked, "fantasy")

	// 2. Submit both genres
	form := validForm()
	form["genre"] = []string{"fantasy", "adventure"}
	response = f.do(http.MethodPost, "/books/b1/update", form)
	require.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/books/b1", response.Header().Get("Location"))

	// 3. Detail shows both
	response = f.do(http.MethodGet, "/books/b1", nil)
	require.Equal(t, http.StatusOK, response.Code)
	detail := f.renderer.Last().Data.(book.DetailPage)
	assert.Equal(t, "b1", detail.Book.ID)
	require.Len(t, detail.Genres, 2)
	assert.Equal(t, "Adventure", detail.Genres[0].Name)
	assert.Equal(t, "Fantasy", detail.Genres[1].Name)
	require.NotNil(t, detail.Book.Author)
	assert.Equal(t, "Tolkien, John", detail.Book.Author.Name())
	assert.Equal(t, 1, f.count(t))
}

func TestDetail_Unknown(t *testing.T) {
	f := newFixture(t)

	response := f.do(http.MethodGet, "/books/nope", nil)

	assert.Equal(t, http.StatusNotFound, response.Code)
	assert.Equal(t, "error", f.renderer.Last().Name)
}

func TestList_EmbedsAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.InsertBook(ctx, &catalog.Book{ID: "b2", Title: "silmarillion", AuthorID: "a1"}))
	require.NoError(t, f.store.InsertBook(ctx, &catalog.Book{ID: "b1", Title: "Hobbit", AuthorID: "a1"}))

	response := f.do(http.MethodGet, "/books", nil)

	require.Equal(t, http.StatusOK, response.Code)
	page := f.renderer.Last().Data.(book.ListPage)
	require.Len(t, page.Books, 2)
	assert.Equal(t, "Hobbit", page.Books[0].Title)
	require.NotNil(t, page.Books[1].Author)
	assert.Equal(t, "a1", page.Books[1].Author.ID)
}

/*
TestDelete_GuardedByCopies keeps the book while copies of it exist.
*/
func TestDelete_GuardedByCopies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.InsertBook(ctx, &catalog.Book{ID: "b1", Title: "Hobbit", AuthorID: "a1"}))
	require.NoError(t, f.store.InsertBookInstance(ctx, &catalog.BookInstance{ID: "c1", BookID: "b1", Imprint: "Allen", Status: catalog.StatusLoaned}))

	response := f.do(http.MethodPost, "/books/b1/delete", url.Values{"book_id": {"b1"}})
	require.Equal(t, http.StatusOK, response.Code)
	page := f.renderer.Last().Data.(book.DeletePage)
	assert.Len(t, page.Copies, 1)
	assert.Equal(t, 1, f.count(t))

	require.NoError(t, f.store.DeleteBookInstance(ctx, "c1"))
	response = f.do(http.MethodPost, "/books/b1/delete", url.Values{"book_id": {"b1"}})
	require.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/books", response.Header().Get("Location"))
	assert.Equal(t, 0, f.count(t))
}

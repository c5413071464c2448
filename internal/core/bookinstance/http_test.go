package bookinstance_test

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

	"github.com/taibuivan/locallibrary/internal/core/bookinstance"
	"github.com/taibuivan/locallibrary/internal/core/catalog"
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

	service := bookinstance.NewService(store, summary.NewService(store, nil, 0, logger), logger)
	router := chi.NewRouter()
	router.Route("/bookinstances", bookinstance.NewHandler(service, renderer).RegisterRoutes)

	require.NoError(t, store.InsertBook(ctx, &catalog.Book{ID: "b1", Title: "The Hobbit", AuthorID: "a1"}))
	require.NoError(t, store.InsertBook(ctx, &catalog.Book{ID: "b2", Title: "Dune", AuthorID: "a2"}))
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

/*
TestCreate covers status defaulting, due dates and reference checks.
*/
func TestCreate(t *testing.T) {
	tests := []struct {
		name   string
		form   url.Values
		status catalog.Status
		fields []string
	}{
		{"default_status", url.Values{"book": {"b1"}, "imprint": {"Allen & Unwin"}}, catalog.StatusMaintenance, nil},
		{"loaned_with_due", url.Values{"book": {"b1"}, "imprint": {"Allen"}, "status": {"Loaned"}, "due_back": {"2026-11-01"}}, catalog.StatusLoaned, nil},
		{"invalid_status", url.Values{"book": {"b1"}, "imprint": {"Allen"}, "status": {"Lost"}}, "", []string{"status"}},
		{"unknown_book", url.Values{"book": {"ghost"}, "imprint": {"Allen"}}, "", []string{"book"}},
		{"missing_everything", url.Values{"due_back": {"soon"}}, "", []string{"book", "imprint", "due_back"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			response := f.do(http.MethodPost, "/bookinstances/create", tt.form)

			instances, err := f.store.FindBookInstances(context.Background(), catalog.BookInstanceFilter{})
			require.NoError(t, err)

			if tt.fields == nil {
				require.Equal(t, http.StatusSeeOther, response.Code)
				require.Len(t, instances, 1)
				assert.Equal(t, "/bookinstances/"+instances[0].ID, response.Header().Get("Location"))
				assert.Equal(t, tt.status, instances[0].Status)
				return
			}

			require.Equal(t, http.StatusOK, response.Code)
			page := f.renderer.Last().Data.(bookinstance.FormPage)
			require.Len(t, page.Errors, len(tt.fields))
			for i, field := range tt.fields {
				assert.Equal(t, field, page.Errors[i].Field)
			}
			assert.Len(t, page.Books, 2)
			assert.Empty(t, instances)
		})
	}
}

/*
TestList_SortedByBookTitle orders copies by book title, then imprint.
*/
func TestList_SortedByBookTitle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.InsertBookInstance(ctx, &catalog.BookInstance{ID: "c1", BookID: "b1", Imprint: "Harper", Status: catalog.StatusAvailable}))
	require.NoError(t, f.store.InsertBookInstance(ctx, &catalog.BookInstance{ID: "c2", BookID: "b2", Imprint: "Ace", Status: catalog.StatusAvailable}))
	require.NoError(t, f.store.InsertBookInstance(ctx, &catalog.BookInstance{ID: "c3", BookID: "b1", Imprint: "Allen", Status: catalog.StatusLoaned}))

	response := f.do(http.MethodGet, "/bookinstances", nil)

	require.Equal(t, http.StatusOK, response.Code)
	page := f.renderer.Last().Data.(bookinstance.ListPage)
	var order []string
	for _, instance := range page.Instances {
		order = append(order, instance.ID)
	}
	assert.Equal(t, []string{"c2", "c3", "c1"}, order)
	assert.Equal(t, "Dune", page.Instances[0].Book.Title)
}

func TestUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.InsertBookInstance(ctx, &catalog.BookInstance{ID: "c1", BookID: "b1", Imprint: "Allen", Status: catalog.StatusAvailable}))

	response := f.do(http.MethodGet, "/bookinstances/c1/update", nil)
	require.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "Available", f.renderer.Last().Data.(bookinstance.FormPage).Value("status"))

	response = f.do(http.MethodPost, "/bookinstances/c1/update", url.Values{
		"book": {"b2"}, "imprint": {"Ace"}, "status": {"Reserved"}, "due_back": {"2026-12-24"},
	})
	require.Equal(t, http.StatusSeeOther, response.Code)
	stored, err := f.store.FindBookInstanceByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "b2", stored.BookID)
	assert.Equal(t, "Dec 24, 2026", stored.DueBackFormatted())

	response = f.do(http.MethodGet, "/bookinstances/c1", nil)
	require.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "Dune", f.renderer.Last().Data.(bookinstance.DetailPage).Instance.Book.Title)

	response = f.do(http.MethodPost, "/bookinstances/c1/delete", url.Values{"bookinstance_id": {"c1"}})
	require.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/bookinstances", response.Header().Get("Location"))
	_, err = f.store.FindBookInstanceByID(ctx, "c1")
	assert.Error(t, err)

	response = f.do(http.MethodGet, "/bookinstances/c1", nil)
	assert.Equal(t, http.StatusNotFound, response.Code)
}

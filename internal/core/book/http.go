package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/internal/platform/view"
)

const listURL = "/books"

type ListPage struct {
	Title string
	Books []*catalog.Book
}

type DetailPage struct {
	Title  string
	Book   *catalog.Book
	Genres []*catalog.Genre
	Copies []*catalog.BookInstance
}

// FormPage is the book form: field values plus the author and genre choices.
type FormPage struct {
	view.Form
	Authors []*catalog.Author
	Genres  []GenreOption
}

// DeletePage is the confirmation view. A non-empty Copies means the delete is blocked.
type DeletePage struct {
	Title  string
	Book   *catalog.Book
	Copies []*catalog.BookInstance
}

type Handler struct {
	service *Service
	views   view.Renderer
}

func NewHandler(service *Service, views view.Renderer) *Handler {
	return &Handler{service: service, views: views}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listBooks)
	router.Get("/create", handler.createForm)
	router.Post("/create", handler.createBook)
	router.Get("/{id}", handler.getBook)
	router.Get("/{id}/delete", handler.deleteForm)
	router.Post("/{id}/delete", handler.deleteBook)
	router.Get("/{id}/update", handler.updateForm)
	router.Post("/{id}/update", handler.updateBook)
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}
	respond.Page(writer, request, handler.views, "book_list", ListPage{Title: "Book List", Books: books})
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.service.Detail(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}
	respond.Page(writer, request, handler.views, "book_detail", DetailPage{
		Title:  detail.Book.Title,
		Book:   detail.Book,
		Genres: detail.Genres,
		Copies: detail.Copies,
	})
}

func (handler *Handler) createForm(writer http.ResponseWriter, request *http.Request) {
	options, err := handler.service.Options(request.Context())
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}
	respond.Page(writer, request, handler.views, "book_form", FormPage{
		Form:    view.Form{Title: "Create Book"},
		Authors: options.Authors,
		Genres:  Annotate(options.Genres, nil),
	})
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	input, err := requestutil.Form(writer, request)
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}

	outcome, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}
	handler.finishForm(writer, request, "Create Book", outcome)
}

func (handler *Handler) updateForm(writer http.ResponseWriter, request *http.Request) {
	book, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}

	options, err := handler.service.Options(request.Context())
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}

	respond.Page(writer, request, handler.views, "book_form", FormPage{
		Form:    view.Form{Title: "Update Book", Values: formValues(book)},
		Authors: options.Authors,
		Genres:  Annotate(options.Genres, book.GenreIDs),
	})
}

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	input, err := requestutil.Form(writer, request)
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}

	outcome, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}
	handler.finishForm(writer, request, "Update Book", outcome)
}

// finishForm redisplays an invalid submission with the submitted selection,
// or redirects to the saved book.
func (handler *Handler) finishForm(writer http.ResponseWriter, request *http.Request, title string, outcome *Outcome) {
	if outcome.Book == nil {
		respond.Page(writer, request, handler.views, "book_form", FormPage{
			Form: view.Form{
				Title:  title,
				Values: outcome.Form.Values(),
				Errors: outcome.Form.Errors(),
			},
			Authors: outcome.Options.Authors,
			Genres:  Annotate(outcome.Options.Genres, outcome.GenreIDs),
		})
		return
	}
	respond.Redirect(writer, request, outcome.Book.URL())
}

func (handler *Handler) deleteForm(writer http.ResponseWriter, request *http.Request) {
	deletion, err := handler.service.PrepareDelete(request.Context(), requestutil.ID(request, "id"))
	if apperr.IsNotFound(err) {
		respond.Redirect(writer, request, listURL)
		return
	}
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}
	respond.Page(writer, request, handler.views, "book_delete", deletePage(deletion))
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	input, err := requestutil.Form(writer, request)
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}

	deletion, err := handler.service.Delete(request.Context(), requestutil.TargetID(request, input, "book_id", "id"))
	if apperr.IsNotFound(err) {
		respond.Redirect(writer, request, listURL)
		return
	}
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}

	if !deletion.Deleted {
		respond.Page(writer, request, handler.views, "book_delete", deletePage(deletion))
		return
	}
	respond.Redirect(writer, request, listURL)
}

func deletePage(deletion *Deletion) DeletePage {
	return DeletePage{Title: "Delete Book", Book: deletion.Book, Copies: deletion.Verdict.Copies}
}

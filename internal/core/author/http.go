package author

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/internal/platform/view"
)

const listURL = "/authors"

type ListPage struct {
	Title   string
	Authors []*catalog.Author
}

type DetailPage struct {
	Title  string
	Author *catalog.Author
	Books  []*catalog.Book
}

// DeletePage is the confirmation view. A non-empty Books means the delete is blocked.
type DeletePage struct {
	Title  string
	Author *catalog.Author
	Books  []*catalog.Book
}

type Handler struct {
	service *Service
	views   view.Renderer
}

func NewHandler(service *Service, views view.Renderer) *Handler {
	return &Handler{service: service, views: views}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listAuthors)
	router.Get("/create", handler.createForm)
	router.Post("/create", handler.createAuthor)
	router.Get("/{id}", handler.getAuthor)
	router.Get("/{id}/delete", handler.deleteForm)
	router.Post("/{id}/delete", handler.deleteAuthor)
	router.Get("/{id}/update", handler.updateForm)
	router.Post("/{id}/update", handler.updateAuthor)
}

func (handler *Handler) listAuthors(writer http.ResponseWriter, request *http.Request) {
	authors, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}
	respond.Page(writer, request, handler.views, "author_list", ListPage{Title: "Author List", Authors: authors})
}

func (handler *Handler) getAuthor(writer http.ResponseWriter, request *http.Request) {
	author, books, err := handler.service.Detail(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}
	respond.Page(writer, request, handler.views, "author_detail", DetailPage{Title: "Author Detail", Author: author, Books: books})
}

func (handler *Handler) createForm(writer http.ResponseWriter, request *http.Request) {
	respond.Page(writer, request, handler.views, "author_form", view.Form{Title: "Create Author"})
}

func (handler *Handler) createAuthor(writer http.ResponseWriter, request *http.Request) {
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
	handler.finishForm(writer, request, "Create Author", outcome)
}

func (handler *Handler) updateForm(writer http.ResponseWriter, request *http.Request) {
	author, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}
	respond.Page(writer, request, handler.views, "author_form", view.Form{Title: "Update Author", Values: formValues(author)})
}

func (handler *Handler) updateAuthor(writer http.ResponseWriter, request *http.Request) {
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
	handler.finishForm(writer, request, "Update Author", outcome)
}

// finishForm redisplays an invalid submission or redirects to the saved author.
func (handler *Handler) finishForm(writer http.ResponseWriter, request *http.Request, title string, outcome *Outcome) {
	if outcome.Author == nil {
		respond.Page(writer, request, handler.views, "author_form", view.Form{
			Title:  title,
			Values: outcome.Form.Values(),
			Errors: outcome.Form.Errors(),
		})
		return
	}
	respond.Redirect(writer, request, outcome.Author.URL())
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
	respond.Page(writer, request, handler.views, "author_delete", deletePage(deletion))
}

func (handler *Handler) deleteAuthor(writer http.ResponseWriter, request *http.Request) {
	input, err := requestutil.Form(writer, request)
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}

	deletion, err := handler.service.Delete(request.Context(), requestutil.TargetID(request, input, "author_id", "id"))
	if apperr.IsNotFound(err) {
		respond.Redirect(writer, request, listURL)
		return
	}
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}

	if !deletion.Deleted {
		respond.Page(writer, request, handler.views, "author_delete", deletePage(deletion))
		return
	}
	respond.Redirect(writer, request, listURL)
}

func deletePage(deletion *Deletion) DeletePage {
	return DeletePage{Title: "Delete Author", Author: deletion.Author, Books: deletion.Verdict.Books}
}

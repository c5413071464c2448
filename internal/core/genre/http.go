package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/internal/platform/view"
)

const listURL = "/genres"

type ListPage struct {
	Title  string
	Genres []*catalog.Genre
}

type DetailPage struct {
	Title string
	Genre *catalog.Genre
	Books []*catalog.Book
}

// DeletePage is the confirmation view. A non-empty Books means the delete is blocked.
type DeletePage struct {
	Title string
	Genre *catalog.Genre
	Books []*catalog.Book
}

type Handler struct {
	service *Service
	views   view.Renderer
}

func NewHandler(service *Service, views view.Renderer) *Handler {
	return &Handler{service: service, views: views}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listGenres)
	router.Get("/create", handler.createForm)
	router.Post("/create", handler.createGenre)
	router.Get("/{id}", handler.getGenre)
	router.Get("/{id}/delete", handler.deleteForm)
	router.Post("/{id}/delete", handler.deleteGenre)
	router.Get("/{id}/update", handler.updateForm)
	router.Post("/{id}/update", handler.updateGenre)
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}
	respond.Page(writer, request, handler.views, "genre_list", ListPage{Title: "Genre List", Genres: genres})
}

func (handler *Handler) getGenre(writer http.ResponseWriter, request *http.Request) {
	genre, books, err := handler.service.Detail(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}
	respond.Page(writer, request, handler.views, "genre_detail", DetailPage{Title: "Genre Detail", Genre: genre, Books: books})
}

func (handler *Handler) createForm(writer http.ResponseWriter, request *http.Request) {
	respond.Page(writer, request, handler.views, "genre_form", view.Form{Title: "Create Genre"})
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
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
	handler.finishForm(writer, request, "Create Genre", outcome)
}

func (handler *Handler) updateForm(writer http.ResponseWriter, request *http.Request) {
	genre, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}
	respond.Page(writer, request, handler.views, "genre_form", view.Form{
		Title:  "Update Genre",
		Values: map[string]string{catalog.FieldGenreName: genre.Name},
	})
}

func (handler *Handler) updateGenre(writer http.ResponseWriter, request *http.Request) {
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
	handler.finishForm(writer, request, "Update Genre", outcome)
}

// finishForm redisplays an invalid submission, or redirects to the saved or
// canonical existing genre.
func (handler *Handler) finishForm(writer http.ResponseWriter, request *http.Request, title string, outcome *Outcome) {
	if outcome.Genre == nil {
		respond.Page(writer, request, handler.views, "genre_form", view.Form{
			Title:  title,
			Values: outcome.Form.Values(),
			Errors: outcome.Form.Errors(),
		})
		return
	}
	respond.Redirect(writer, request, outcome.Genre.URL())
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
	respond.Page(writer, request, handler.views, "genre_delete", deletePage(deletion))
}

func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	input, err := requestutil.Form(writer, request)
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}

	deletion, err := handler.service.Delete(request.Context(), requestutil.TargetID(request, input, "genre_id", "id"))
	if apperr.IsNotFound(err) {
		respond.Redirect(writer, request, listURL)
		return
	}
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}

	if !deletion.Deleted {
		respond.Page(writer, request, handler.views, "genre_delete", deletePage(deletion))
		return
	}
	respond.Redirect(writer, request, listURL)
}

func deletePage(deletion *Deletion) DeletePage {
	return DeletePage{Title: "Delete Genre", Genre: deletion.Genre, Books: deletion.Verdict.Books}
}

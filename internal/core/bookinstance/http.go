package bookinstance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/internal/platform/view"
)

const listURL = "/bookinstances"

type ListPage struct {
	Title     string
	Instances []*catalog.BookInstance
}

type DetailPage struct {
	Title    string
	Instance *catalog.BookInstance
}

// FormPage is the copy form: field values plus the book and status choices.
type FormPage struct {
	view.Form
	Books    []*catalog.Book
	Statuses []string
}

type DeletePage struct {
	Title    string
	Instance *catalog.BookInstance
}

type Handler struct {
	service *Service
	views   view.Renderer
}

func NewHandler(service *Service, views view.Renderer) *Handler {
	return &Handler{service: service, views: views}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listInstances)
	router.Get("/create", handler.createForm)
	router.Post("/create", handler.createInstance)
	router.Get("/{id}", handler.getInstance)
	router.Get("/{id}/delete", handler.deleteForm)
	router.Post("/{id}/delete", handler.deleteInstance)
	router.Get("/{id}/update", handler.updateForm)
	router.Post("/{id}/update", handler.updateInstance)
}

func (handler *Handler) listInstances(writer http.ResponseWriter, request *http.Request) {
	instances, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}
	respond.Page(writer, request, handler.views, "bookinstance_list", ListPage{Title: "Book Instance List", Instances: instances})
}

func (handler *Handler) getInstance(writer http.ResponseWriter, request *http.Request) {
	instance, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}
	respond.Page(writer, request, handler.views, "bookinstance_detail", DetailPage{Title: "Book Instance Detail", Instance: instance})
}

func (handler *Handler) createForm(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.Books(request.Context())
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}
	respond.Page(writer, request, handler.views, "bookinstance_form", FormPage{
		Form:     view.Form{Title: "Create BookInstance"},
		Books:    books,
		Statuses: catalog.StatusNames(),
	})
}

func (handler *Handler) createInstance(writer http.ResponseWriter, request *http.Request) {
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
	handler.finishForm(writer, request, "Create BookInstance", outcome)
}

func (handler *Handler) updateForm(writer http.ResponseWriter, request *http.Request) {
	instance, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}

	books, err := handler.service.Books(request.Context())
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}

	respond.Page(writer, request, handler.views, "bookinstance_form", FormPage{
		Form:     view.Form{Title: "Update BookInstance", Values: formValues(instance)},
		Books:    books,
		Statuses: catalog.StatusNames(),
	})
}

func (handler *Handler) updateInstance(writer http.ResponseWriter, request *http.Request) {
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
	handler.finishForm(writer, request, "Update BookInstance", outcome)
}

func (handler *Handler) finishForm(writer http.ResponseWriter, request *http.Request, title string, outcome *Outcome) {
	if outcome.Instance == nil {
		respond.Page(writer, request, handler.views, "bookinstance_form", FormPage{
			Form: view.Form{
				Title:  title,
				Values: outcome.Form.Values(),
				Errors: outcome.Form.Errors(),
			},
			Books:    outcome.Books,
			Statuses: catalog.StatusNames(),
		})
		return
	}
	respond.Redirect(writer, request, outcome.Instance.URL())
}

func (handler *Handler) deleteForm(writer http.ResponseWriter, request *http.Request) {
	instance, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if apperr.IsNotFound(err) {
		respond.Redirect(writer, request, listURL)
		return
	}
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}
	respond.Page(writer, request, handler.views, "bookinstance_delete", DeletePage{Title: "Delete BookInstance", Instance: instance})
}

func (handler *Handler) deleteInstance(writer http.ResponseWriter, request *http.Request) {
	input, err := requestutil.Form(writer, request)
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}

	err = handler.service.Delete(request.Context(), requestutil.TargetID(request, input, "bookinstance_id", "id"))
	if err != nil && !apperr.IsNotFound(err) {
		respond.Error(writer, request, handler.views, err)
		return
	}
	respond.Redirect(writer, request, listURL)
}

package summary

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/internal/platform/view"
)

// Page is the view model of the home page.
type Page struct {
	Title  string
	Counts *Counts
}

type Handler struct {
	service *Service
	views   view.Renderer
}

func NewHandler(service *Service, views view.Renderer) *Handler {
	return &Handler{service: service, views: views}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.index)
}

func (handler *Handler) index(writer http.ResponseWriter, request *http.Request) {
	counts, err := handler.service.Counts(request.Context())
	if err != nil {
		respond.Error(writer, request, handler.views, err)
		return
	}
	respond.Page(writer, request, handler.views, "index", Page{Title: "Local Library Home", Counts: counts})
}

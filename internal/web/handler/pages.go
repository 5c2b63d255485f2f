package handler

import (
	"errors"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"

	"github.com/vanguardgg/sitecms/internal/middleware"
	"github.com/vanguardgg/sitecms/internal/model"
	"github.com/vanguardgg/sitecms/internal/services/news"
	webmw "github.com/vanguardgg/sitecms/internal/web/middleware"
)

// PagesHandler serves the public site and the admin panel pages
type PagesHandler struct {
	renderer *Renderer
	news     *news.Service
	logger   *slog.Logger
}

// NewPagesHandler creates a new PagesHandler
func NewPagesHandler(renderer *Renderer, news *news.Service, logger *slog.Logger) *PagesHandler {
	return &PagesHandler{
		renderer: renderer,
		news:     news,
		logger:   logger,
	}
}

// Page returns a handler rendering a fixed page
func (h *PagesHandler) Page(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderer.Render(w, r, http.StatusOK, name, PageData{
			Title:    title,
			Username: middleware.GetUsername(r.Context()),
		})
	}
}

// NewsDetail renders the article page when the id resolves, else the 404 page
func (h *PagesHandler) NewsDetail(w http.ResponseWriter, r *http.Request) {
	article, err := h.news.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, model.ErrNewsNotFound) || errors.Is(err, model.ErrInvalidID) {
			h.renderer.NotFound(w, r)
			return
		}
		h.logger.Error("failed to load news article",
			slog.String("request_id", chimw.GetReqID(r.Context())),
			slog.String("error", err.Error()),
		)
		webmw.ErrorPage(w, http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, PageNewsDetail, PageData{
		Title:   article.Title,
		Article: article,
	})
}

// NotFound renders the 404 page
func (h *PagesHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderer.NotFound(w, r)
}

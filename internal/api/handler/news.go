package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vanguardgg/sitecms/internal/api/request"
	"github.com/vanguardgg/sitecms/internal/api/response"
	"github.com/vanguardgg/sitecms/internal/middleware"
	"github.com/vanguardgg/sitecms/internal/services/news"
)

// NewsHandler handles news endpoints
type NewsHandler struct {
	service *news.Service
	logger  *slog.Logger
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(service *news.Service, logger *slog.Logger) *NewsHandler {
	return &NewsHandler{
		service: service,
		logger:  logger,
	}
}

// ListPublic handles GET /api/news
func (h *NewsHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			WriteError(w, NewInvalidRequestError("limit must be an integer"))
			return
		}
		limit = n
	}

	articles, err := h.service.ListPublic(r.Context(), limit)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, articles)
}

// List handles GET /api/admin/news
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, articles)
}

// Get handles GET /api/news/{id} and GET /api/admin/news/{id}
func (h *NewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	article, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, article)
}

// Create handles POST /api/admin/news
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body request.NewsBody
	file, err := request.Decode(r, &body)
	if err != nil {
		WriteError(w, invalidBody(err))
		return
	}

	in := body.CreateInput()
	in.File = file

	article, err := h.service.Create(r.Context(), in, middleware.GetUsername(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, article)
}

// Update handles PUT /api/admin/news/{id}
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body request.NewsBody
	file, err := request.Decode(r, &body)
	if err != nil {
		WriteError(w, invalidBody(err))
		return
	}

	in := body.UpdateInput()
	in.File = file

	article, err := h.service.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, article)
}

// Delete handles DELETE /api/admin/news/{id}
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.DeleteResponse{Message: "News article deleted", ID: id})
}

// invalidBody turns a decoding failure into a 400 naming the problem
func invalidBody(err error) error {
	if errors.Is(err, request.ErrInvalidBody) {
		return NewInvalidRequestError(err.Error())
	}
	return err
}

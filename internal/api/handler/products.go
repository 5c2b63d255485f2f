package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vanguardgg/sitecms/internal/api/request"
	"github.com/vanguardgg/sitecms/internal/api/response"
	"github.com/vanguardgg/sitecms/internal/services/products"
)

// ProductHandler handles store endpoints
type ProductHandler struct {
	service *products.Service
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *products.Service, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// ListPublic handles GET /api/products (in stock only)
func (h *ProductHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListInStock(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

// GetPublic handles GET /api/products/{id}
func (h *ProductHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetInStock(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, product)
}

// List handles GET /api/admin/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

// Get handles GET /api/admin/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, product)
}

// Create handles POST /api/admin/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body request.ProductBody
	file, err := request.Decode(r, &body)
	if err != nil {
		WriteError(w, invalidBody(err))
		return
	}

	in := body.CreateInput()
	in.File = file

	product, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/admin/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body request.ProductBody
	file, err := request.Decode(r, &body)
	if err != nil {
		WriteError(w, invalidBody(err))
		return
	}

	in := body.UpdateInput()
	in.File = file

	product, err := h.service.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/admin/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.DeleteResponse{Message: "Product deleted", ID: id})
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vanguardgg/sitecms/internal/api/request"
	"github.com/vanguardgg/sitecms/internal/api/response"
	"github.com/vanguardgg/sitecms/internal/services/players"
)

// PlayerHandler handles roster endpoints
type PlayerHandler struct {
	service *players.Service
	logger  *slog.Logger
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(service *players.Service, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{
		service: service,
		logger:  logger,
	}
}

// List handles GET /api/players and GET /api/admin/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	roster, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, roster)
}

// Get handles GET /api/players/{id} and GET /api/admin/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	player, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, player)
}

// Create handles POST /api/admin/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body request.PlayerBody
	file, err := request.Decode(r, &body)
	if err != nil {
		WriteError(w, invalidBody(err))
		return
	}

	in := body.CreateInput()
	in.File = file

	player, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, player)
}

// Update handles PUT /api/admin/players/{id}
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body request.PlayerBody
	file, err := request.Decode(r, &body)
	if err != nil {
		WriteError(w, invalidBody(err))
		return
	}

	in := body.UpdateInput()
	in.File = file

	player, err := h.service.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, player)
}

// Delete handles DELETE /api/admin/players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.DeleteResponse{Message: "Player deleted", ID: id})
}

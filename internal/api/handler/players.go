package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bartdebruin-tp/matchmaker/internal/api/request"
	"github.com/bartdebruin-tp/matchmaker/internal/api/response"
	"github.com/bartdebruin-tp/matchmaker/internal/model"
	"github.com/bartdebruin-tp/matchmaker/internal/store/players"
)

// PlayersHandler handles roster endpoints
type PlayersHandler struct {
	players *players.Store
}

// NewPlayersHandler creates a new players handler
func NewPlayersHandler(store *players.Store) *PlayersHandler {
	return &PlayersHandler{
		players: store,
	}
}

// List handles GET /api/v1/players. It serves the local cache; POST
// /sync refreshes it from the remote store.
func (h *PlayersHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.PlayersFromModel(h.players.All()))
}

// Create handles POST /api/v1/players
func (h *PlayersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	player, err := h.players.Add(r.Context(), req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// Update handles PATCH /api/v1/players/{id}
func (h *PlayersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	var req request.UpdatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	if _, ok := h.players.GetByID(id); !ok {
		WriteError(w, model.ErrPlayerNotFound)
		return
	}

	if err := h.players.Update(r.Context(), id, req.Name); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Delete handles DELETE /api/v1/players/{id}
func (h *PlayersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	if _, ok := h.players.GetByID(id); !ok {
		WriteError(w, model.ErrPlayerNotFound)
		return
	}

	if err := h.players.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bartdebruin-tp/matchmaker/internal/api/request"
	"github.com/bartdebruin-tp/matchmaker/internal/api/response"
	"github.com/bartdebruin-tp/matchmaker/internal/model"
	"github.com/bartdebruin-tp/matchmaker/internal/store/subpages"
)

// SubPagesHandler handles sub-page and attendance endpoints
type SubPagesHandler struct {
	subPages *subpages.Store
}

// NewSubPagesHandler creates a new sub-pages handler
func NewSubPagesHandler(subPageStore *subpages.Store) *SubPagesHandler {
	return &SubPagesHandler{
		subPages: subPageStore,
	}
}

// List handles GET /api/v1/subpages, optionally filtered by ?group_id=
func (h *SubPagesHandler) List(w http.ResponseWriter, r *http.Request) {
	if groupID := r.URL.Query().Get("group_id"); groupID != "" {
		response.JSON(w, http.StatusOK, response.SubPagesFromModel(h.subPages.GetByGroupID(model.GroupID(groupID))))
		return
	}
	response.JSON(w, http.StatusOK, response.SubPagesFromModel(h.subPages.All()))
}

// Get handles GET /api/v1/subpages/{id}
func (h *SubPagesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.SubPageID(mux.Vars(r)["id"])

	subPage, ok := h.subPages.GetByID(id)
	if !ok {
		WriteError(w, model.ErrSubPageNotFound)
		return
	}

	response.JSON(w, http.StatusOK, response.SubPageFromModel(subPage))
}

// Create handles POST /api/v1/subpages
func (h *SubPagesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSubPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.GroupID == "" {
		WriteError(w, NewInvalidRequestError("group_id is required"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	subPage, err := h.subPages.Add(r.Context(), model.GroupID(req.GroupID), req.Name, req.Date)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SubPageFromModel(subPage))
}

// Update handles PATCH /api/v1/subpages/{id}
func (h *SubPagesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.SubPageID(mux.Vars(r)["id"])

	var req request.UpdateSubPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	if err := h.subPages.Update(r.Context(), id, req.Name, req.Date); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Delete handles DELETE /api/v1/subpages/{id}
func (h *SubPagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.SubPageID(mux.Vars(r)["id"])

	if err := h.subPages.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// AddPlayer handles POST /api/v1/subpages/{id}/players/{player_id}
func (h *SubPagesHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	subPageID := model.SubPageID(vars["id"])
	playerID := model.PlayerID(vars["player_id"])

	if err := h.subPages.AddPlayer(r.Context(), subPageID, playerID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// RemovePlayer handles DELETE /api/v1/subpages/{id}/players/{player_id}
func (h *SubPagesHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	subPageID := model.SubPageID(vars["id"])
	playerID := model.PlayerID(vars["player_id"])

	if err := h.subPages.RemovePlayer(r.Context(), subPageID, playerID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// TogglePresent handles POST /api/v1/subpages/{id}/players/{player_id}/toggle
func (h *SubPagesHandler) TogglePresent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	subPageID := model.SubPageID(vars["id"])
	playerID := model.PlayerID(vars["player_id"])

	if err := h.subPages.TogglePresent(r.Context(), subPageID, playerID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bartdebruin-tp/matchmaker/internal/api/request"
	"github.com/bartdebruin-tp/matchmaker/internal/api/response"
	"github.com/bartdebruin-tp/matchmaker/internal/model"
	"github.com/bartdebruin-tp/matchmaker/internal/store/groups"
	"github.com/bartdebruin-tp/matchmaker/internal/store/subpages"
)

// GroupsHandler handles group, membership and active-player endpoints
type GroupsHandler struct {
	groups   *groups.Store
	subPages *subpages.Store
}

// NewGroupsHandler creates a new groups handler
func NewGroupsHandler(groupStore *groups.Store, subPageStore *subpages.Store) *GroupsHandler {
	return &GroupsHandler{
		groups:   groupStore,
		subPages: subPageStore,
	}
}

// List handles GET /api/v1/groups
func (h *GroupsHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.GroupsFromModel(h.groups.All()))
}

// Create handles POST /api/v1/groups
func (h *GroupsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	group, err := h.groups.Add(r.Context(), req.Name, req.Color)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GroupFromModel(group))
}

// Update handles PATCH /api/v1/groups/{id}
func (h *GroupsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.GroupID(mux.Vars(r)["id"])

	var req request.UpdateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	if _, ok := h.groups.GetByID(id); !ok {
		WriteError(w, model.ErrGroupNotFound)
		return
	}

	if err := h.groups.Update(r.Context(), id, req.Name, req.Color); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Delete handles DELETE /api/v1/groups/{id}
func (h *GroupsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.GroupID(mux.Vars(r)["id"])

	if _, ok := h.groups.GetByID(id); !ok {
		WriteError(w, model.ErrGroupNotFound)
		return
	}

	if err := h.groups.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// AddPlayer handles POST /api/v1/groups/{id}/players/{player_id}
func (h *GroupsHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := model.GroupID(vars["id"])
	playerID := model.PlayerID(vars["player_id"])

	if err := h.groups.AddPlayer(r.Context(), groupID, playerID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// RemovePlayer handles DELETE /api/v1/groups/{id}/players/{player_id}
func (h *GroupsHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := model.GroupID(vars["id"])
	playerID := model.PlayerID(vars["player_id"])

	if err := h.groups.RemovePlayer(r.Context(), groupID, playerID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// ListSubPages handles GET /api/v1/groups/{id}/subpages, newest first
func (h *GroupsHandler) ListSubPages(w http.ResponseWriter, r *http.Request) {
	id := model.GroupID(mux.Vars(r)["id"])
	response.JSON(w, http.StatusOK, response.SubPagesFromModel(h.subPages.GetByGroupID(id)))
}

// ListActivePlayers handles GET /api/v1/active-players
func (h *GroupsHandler) ListActivePlayers(w http.ResponseWriter, r *http.Request) {
	ids := h.groups.ActivePlayers()
	result := make([]string, len(ids))
	for i, id := range ids {
		result[i] = string(id)
	}
	response.JSON(w, http.StatusOK, result)
}

// SetActivePlayer handles PUT /api/v1/active-players/{player_id}
func (h *GroupsHandler) SetActivePlayer(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	var req request.SetActivePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.groups.SetActivePlayer(r.Context(), playerID, req.Active); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// ToggleActivePlayer handles POST /api/v1/active-players/{player_id}/toggle
func (h *GroupsHandler) ToggleActivePlayer(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	if err := h.groups.ToggleActivePlayer(r.Context(), playerID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// ClearActivePlayers handles DELETE /api/v1/active-players
func (h *GroupsHandler) ClearActivePlayers(w http.ResponseWriter, r *http.Request) {
	if err := h.groups.ClearActivePlayers(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

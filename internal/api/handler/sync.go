package handler

import (
	"errors"
	"net/http"

	"github.com/bartdebruin-tp/matchmaker/internal/api/response"
	"github.com/bartdebruin-tp/matchmaker/internal/model"
	"github.com/bartdebruin-tp/matchmaker/internal/snapshot"
	"github.com/bartdebruin-tp/matchmaker/internal/store/groups"
	"github.com/bartdebruin-tp/matchmaker/internal/store/players"
	"github.com/bartdebruin-tp/matchmaker/internal/store/subpages"
)

// SyncHandler handles refetch and snapshot endpoints
type SyncHandler struct {
	players  *players.Store
	groups   *groups.Store
	subPages *subpages.Store
	snapshot *snapshot.File
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(playerStore *players.Store, groupStore *groups.Store, subPageStore *subpages.Store, snap *snapshot.File) *SyncHandler {
	return &SyncHandler{
		players:  playerStore,
		groups:   groupStore,
		subPages: subPageStore,
		snapshot: snap,
	}
}

// Sync handles POST /api/v1/sync
//
// Refetches all three collections from the remote store. A failure in one
// collection leaves that collection's cache untouched and aborts the rest.
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.players.FetchAll(ctx); err != nil {
		WriteError(w, err)
		return
	}
	if err := h.groups.FetchAll(ctx); err != nil {
		WriteError(w, err)
		return
	}
	if err := h.subPages.FetchAll(ctx); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.exportData())
}

// GetSnapshot handles GET /api/v1/snapshot
func (h *SyncHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	data, err := h.snapshot.Load()
	if err != nil {
		if errors.Is(err, snapshot.ErrNoSnapshot) {
			WriteError(w, NewNotFoundError("no snapshot available"))
			return
		}
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, data)
}

// SaveSnapshot handles POST /api/v1/snapshot
func (h *SyncHandler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := h.snapshot.Save(h.exportData()); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// ClearSnapshot handles DELETE /api/v1/snapshot
func (h *SyncHandler) ClearSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := h.snapshot.Clear(); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *SyncHandler) exportData() model.AppData {
	return model.AppData{
		Players:         h.players.All(),
		Groups:          h.groups.All(),
		ActivePlayerIDs: h.groups.ActivePlayers(),
	}
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bartdebruin-tp/matchmaker/internal/api/request"
	"github.com/bartdebruin-tp/matchmaker/internal/api/response"
	"github.com/bartdebruin-tp/matchmaker/internal/match"
	"github.com/bartdebruin-tp/matchmaker/internal/model"
	"github.com/bartdebruin-tp/matchmaker/internal/store/groups"
	"github.com/bartdebruin-tp/matchmaker/internal/store/players"
)

// MatchesHandler handles match generation endpoints
type MatchesHandler struct {
	generator *match.Generator
	players   *players.Store
	groups    *groups.Store
}

// NewMatchesHandler creates a new matches handler
func NewMatchesHandler(generator *match.Generator, playerStore *players.Store, groupStore *groups.Store) *MatchesHandler {
	return &MatchesHandler{
		generator: generator,
		players:   playerStore,
		groups:    groupStore,
	}
}

// Generate handles POST /api/v1/matches/generate
//
// When player_ids is empty the active player set is used instead.
func (h *MatchesHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req request.GenerateMatchesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	playerIDs := make([]model.PlayerID, len(req.PlayerIDs))
	for i, id := range req.PlayerIDs {
		playerIDs[i] = model.PlayerID(id)
	}
	if len(playerIDs) == 0 {
		playerIDs = h.groups.ActivePlayers()
	}

	pool := h.players.GetByIDs(playerIDs)
	if len(pool) < match.PlayersPerMatch {
		WriteError(w, NewInvalidRequestError("at least 4 players are required to generate matches"))
		return
	}

	matches := h.generator.Generate(pool)
	response.JSON(w, http.StatusOK, response.MatchesFromModel(matches))
}

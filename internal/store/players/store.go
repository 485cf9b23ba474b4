package players

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bartdebruin-tp/matchmaker/internal/auth"
	"github.com/bartdebruin-tp/matchmaker/internal/dependencies/clock"
	"github.com/bartdebruin-tp/matchmaker/internal/dependencies/ident"
	"github.com/bartdebruin-tp/matchmaker/internal/model"
	"github.com/bartdebruin-tp/matchmaker/internal/remote"
)

// Store owns the local player collection and keeps it in step with the
// remote store.
//
// Every mutation follows the same protocol: check the auth gate, perform
// exactly one remote call, and patch the local collection only after that
// call succeeds. Failures propagate unchanged and leave the collection
// exactly as it was; a FetchAll is the only way to re-sync after the
// cache falls behind.
type Store struct {
	remote remote.Store
	auth   auth.Provider
	clock  clock.Clock
	ident  ident.Generator
	logger *slog.Logger

	mu      sync.RWMutex
	players []model.Player
}

// New creates a new players store
func New(remote remote.Store, auth auth.Provider, clk clock.Clock, idg ident.Generator, logger *slog.Logger) *Store {
	return &Store{
		remote: remote,
		auth:   auth,
		clock:  clk,
		ident:  idg,
		logger: logger,
	}
}

// FetchAll replaces the local collection with the user's remote players,
// ordered by creation time ascending. Without a signed-in user it is a
// no-op; on a remote error the local collection is left untouched.
func (s *Store) FetchAll(ctx context.Context) error {
	user, ok := s.auth.CurrentUserID()
	if !ok {
		return nil
	}

	fetched, err := s.remote.SelectPlayers(ctx, user)
	if err != nil {
		s.logger.Error("fetching players failed", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	s.players = fetched
	s.mu.Unlock()
	return nil
}

// Add creates a player remotely and, on success, appends it locally
func (s *Store) Add(ctx context.Context, name string) (model.Player, error) {
	user, ok := s.auth.CurrentUserID()
	if !ok {
		return model.Player{}, model.ErrUnauthenticated
	}

	player := model.Player{
		ID:        model.PlayerID(s.ident.NewID()),
		Name:      name,
		CreatedAt: s.clock.Now(),
	}

	if err := s.remote.InsertPlayer(ctx, user, player); err != nil {
		s.logger.Error("adding player failed", slog.String("error", err.Error()))
		return model.Player{}, err
	}

	s.mu.Lock()
	s.players = append(s.players, player)
	s.mu.Unlock()
	return player, nil
}

// Update renames a player remotely and, on success, in the local
// collection. A player missing locally is skipped silently; the remote
// row is already updated.
func (s *Store) Update(ctx context.Context, id model.PlayerID, name string) error {
	user, ok := s.auth.CurrentUserID()
	if !ok {
		return model.ErrUnauthenticated
	}

	if err := s.remote.UpdatePlayer(ctx, user, id, name); err != nil {
		s.logger.Error("updating player failed", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	for i := range s.players {
		if s.players[i].ID == id {
			s.players[i].Name = name
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Delete removes a player remotely and, on success, locally. Membership
// and attendance ids referencing the player in the other collections are
// not pruned here; they disappear on their next refetch.
func (s *Store) Delete(ctx context.Context, id model.PlayerID) error {
	user, ok := s.auth.CurrentUserID()
	if !ok {
		return model.ErrUnauthenticated
	}

	if err := s.remote.DeletePlayer(ctx, user, id); err != nil {
		s.logger.Error("deleting player failed", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	for i := range s.players {
		if s.players[i].ID == id {
			s.players = append(s.players[:i], s.players[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// GetByID looks up a player in the local collection
func (s *Store) GetByID(id model.PlayerID) (model.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.players {
		if p.ID == id {
			return p, true
		}
	}
	return model.Player{}, false
}

// GetByIDs returns the players matching the given ids, in the order the
// ids were given. Ids with no local player are omitted.
func (s *Store) GetByIDs(ids []model.PlayerID) []model.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := make(map[model.PlayerID]model.Player, len(s.players))
	for _, p := range s.players {
		byID[p.ID] = p
	}

	var result []model.Player
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			result = append(result, p)
		}
	}
	return result
}

// All returns a copy of the local collection in store order
func (s *Store) All() []model.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.Player, len(s.players))
	copy(result, s.players)
	return result
}

package groups

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

// Store owns the local group collection, the group-player membership
// relation, and the user's active-player set. The active set shares the
// same remote table family as groups, so it lives here rather than in a
// store of its own.
//
// Mutations follow the remote-then-local protocol: auth gate, one remote
// call, local patch only on success, no rollback. The idempotence checks
// on membership are read before the remote call and not re-checked after
// it, so two interleaved adds for the same pair can both pass; the remote
// store's uniqueness constraint on the pair absorbs the duplicate.
type Store struct {
	remote remote.Store
	auth   auth.Provider
	clock  clock.Clock
	ident  ident.Generator
	logger *slog.Logger

	mu        sync.RWMutex
	groups    []model.Group
	activeIDs []model.PlayerID
}

// New creates a new groups store
func New(remote remote.Store, auth auth.Provider, clk clock.Clock, idg ident.Generator, logger *slog.Logger) *Store {
	return &Store{
		remote: remote,
		auth:   auth,
		clock:  clk,
		ident:  idg,
		logger: logger,
	}
}

// FetchAll rebuilds the local state from three sequential remote reads:
// the user's groups, the whole membership relation, and the user's
// active-player rows. Nothing is committed unless all three succeed.
// Without a signed-in user it is a no-op.
func (s *Store) FetchAll(ctx context.Context) error {
	user, ok := s.auth.CurrentUserID()
	if !ok {
		return nil
	}

	fetched, err := s.remote.SelectGroups(ctx, user)
	if err != nil {
		s.logger.Error("fetching groups failed", slog.String("error", err.Error()))
		return err
	}

	// The relation is read unfiltered; the groups above are already
	// owner-scoped, so foreign rows simply never match a group id.
	memberships, err := s.remote.SelectGroupMemberships(ctx)
	if err != nil {
		s.logger.Error("fetching group memberships failed", slog.String("error", err.Error()))
		return err
	}

	activeIDs, err := s.remote.SelectActivePlayers(ctx, user)
	if err != nil {
		s.logger.Error("fetching active players failed", slog.String("error", err.Error()))
		return err
	}

	for i := range fetched {
		fetched[i].PlayerIDs = []model.PlayerID{}
		for _, m := range memberships {
			if m.GroupID == fetched[i].ID {
				fetched[i].PlayerIDs = append(fetched[i].PlayerIDs, m.PlayerID)
			}
		}
	}

	s.mu.Lock()
	s.groups = fetched
	s.activeIDs = activeIDs
	s.mu.Unlock()
	return nil
}

// Add creates a group remotely and, on success, appends it locally with
// an empty membership. New groups default to random match generation.
func (s *Store) Add(ctx context.Context, name, color string) (model.Group, error) {
	user, ok := s.auth.CurrentUserID()
	if !ok {
		return model.Group{}, model.ErrUnauthenticated
	}

	group := model.Group{
		ID:        model.GroupID(s.ident.NewID()),
		Name:      name,
		Color:     color,
		MatchType: model.MatchTypeRandom,
		PlayerIDs: []model.PlayerID{},
		CreatedAt: s.clock.Now(),
	}

	if err := s.remote.InsertGroup(ctx, user, group); err != nil {
		s.logger.Error("adding group failed", slog.String("error", err.Error()))
		return model.Group{}, err
	}

	s.mu.Lock()
	s.groups = append(s.groups, group)
	s.mu.Unlock()
	return group, nil
}

// Update renames and recolors a group remotely and, on success, locally
func (s *Store) Update(ctx context.Context, id model.GroupID, name, color string) error {
	user, ok := s.auth.CurrentUserID()
	if !ok {
		return model.ErrUnauthenticated
	}

	if err := s.remote.UpdateGroup(ctx, user, id, name, color); err != nil {
		s.logger.Error("updating group failed", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	for i := range s.groups {
		if s.groups[i].ID == id {
			s.groups[i].Name = name
			s.groups[i].Color = color
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Delete removes a group remotely and, on success, locally. Membership
// rows are not pruned from the local collection; they go away with the
// group itself.
func (s *Store) Delete(ctx context.Context, id model.GroupID) error {
	user, ok := s.auth.CurrentUserID()
	if !ok {
		return model.ErrUnauthenticated
	}

	if err := s.remote.DeleteGroup(ctx, user, id); err != nil {
		s.logger.Error("deleting group failed", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	for i := range s.groups {
		if s.groups[i].ID == id {
			s.groups = append(s.groups[:i], s.groups[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// AddPlayer adds a player to a group. If the player is already in the
// group's local membership no remote call is made. A group missing from
// the local cache is tolerated: the membership row is still written
// remotely and picked up by the next refetch.
func (s *Store) AddPlayer(ctx context.Context, groupID model.GroupID, playerID model.PlayerID) error {
	_, ok := s.auth.CurrentUserID()
	if !ok {
		return model.ErrUnauthenticated
	}

	s.mu.RLock()
	for i := range s.groups {
		if s.groups[i].ID == groupID && s.groups[i].HasPlayer(playerID) {
			s.mu.RUnlock()
			return nil
		}
	}
	s.mu.RUnlock()

	m := model.GroupMembership{GroupID: groupID, PlayerID: playerID}
	if err := s.remote.InsertGroupMembership(ctx, m); err != nil {
		s.logger.Error("adding player to group failed", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	for i := range s.groups {
		if s.groups[i].ID == groupID {
			s.groups[i].PlayerIDs = append(s.groups[i].PlayerIDs, playerID)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// RemovePlayer removes a player from a group's membership
func (s *Store) RemovePlayer(ctx context.Context, groupID model.GroupID, playerID model.PlayerID) error {
	_, ok := s.auth.CurrentUserID()
	if !ok {
		return model.ErrUnauthenticated
	}

	if err := s.remote.DeleteGroupMembership(ctx, groupID, playerID); err != nil {
		s.logger.Error("removing player from group failed", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	for i := range s.groups {
		if s.groups[i].ID == groupID {
			s.groups[i].PlayerIDs = removeID(s.groups[i].PlayerIDs, playerID)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// ToggleActivePlayer flips a player's membership in the active set. This
// is a read followed by SetActivePlayer, not an atomic operation.
func (s *Store) ToggleActivePlayer(ctx context.Context, playerID model.PlayerID) error {
	return s.SetActivePlayer(ctx, playerID, !s.IsActive(playerID))
}

// SetActivePlayer adds or removes a player from the user's active set
func (s *Store) SetActivePlayer(ctx context.Context, playerID model.PlayerID, active bool) error {
	user, ok := s.auth.CurrentUserID()
	if !ok {
		return model.ErrUnauthenticated
	}

	if active {
		if err := s.remote.InsertActivePlayer(ctx, user, playerID); err != nil {
			s.logger.Error("activating player failed", slog.String("error", err.Error()))
			return err
		}

		s.mu.Lock()
		if !containsID(s.activeIDs, playerID) {
			s.activeIDs = append(s.activeIDs, playerID)
		}
		s.mu.Unlock()
		return nil
	}

	if err := s.remote.DeleteActivePlayer(ctx, user, playerID); err != nil {
		s.logger.Error("deactivating player failed", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	s.activeIDs = removeID(s.activeIDs, playerID)
	s.mu.Unlock()
	return nil
}

// ClearActivePlayers empties the user's active set
func (s *Store) ClearActivePlayers(ctx context.Context) error {
	user, ok := s.auth.CurrentUserID()
	if !ok {
		return model.ErrUnauthenticated
	}

	if err := s.remote.DeleteActivePlayers(ctx, user); err != nil {
		s.logger.Error("clearing active players failed", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	s.activeIDs = nil
	s.mu.Unlock()
	return nil
}

// ActivePlayers returns the active set in activation order
func (s *Store) ActivePlayers() []model.PlayerID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.PlayerID, len(s.activeIDs))
	copy(result, s.activeIDs)
	return result
}

// IsActive reports whether a player is in the active set
func (s *Store) IsActive(playerID model.PlayerID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return containsID(s.activeIDs, playerID)
}

// GetByID looks up a group in the local collection
func (s *Store) GetByID(id model.GroupID) (model.Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.groups {
		if s.groups[i].ID == id {
			return cloneGroup(s.groups[i]), true
		}
	}
	return model.Group{}, false
}

// GetByPlayerID returns every group whose membership contains the
// player, in store order
func (s *Store) GetByPlayerID(playerID model.PlayerID) []model.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []model.Group
	for i := range s.groups {
		if s.groups[i].HasPlayer(playerID) {
			result = append(result, cloneGroup(s.groups[i]))
		}
	}
	return result
}

// All returns a copy of the local collection in store order
func (s *Store) All() []model.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.Group, len(s.groups))
	for i := range s.groups {
		result[i] = cloneGroup(s.groups[i])
	}
	return result
}

func cloneGroup(g model.Group) model.Group {
	clone := g
	clone.PlayerIDs = make([]model.PlayerID, len(g.PlayerIDs))
	copy(clone.PlayerIDs, g.PlayerIDs)
	return clone
}

func containsID(ids []model.PlayerID, id model.PlayerID) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func removeID(ids []model.PlayerID, id model.PlayerID) []model.PlayerID {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

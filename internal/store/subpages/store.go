package subpages

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/bartdebruin-tp/matchmaker/internal/auth"
	"github.com/bartdebruin-tp/matchmaker/internal/dependencies/clock"
	"github.com/bartdebruin-tp/matchmaker/internal/dependencies/ident"
	"github.com/bartdebruin-tp/matchmaker/internal/model"
	"github.com/bartdebruin-tp/matchmaker/internal/remote"
)

// Store owns the local sub-page collection and the sub-page-player
// attendance relation. Sub-pages are fetched per group view but held in
// one flat collection, so a group-scoped fetch merges into the cache
// instead of replacing it.
//
// Mutations follow the remote-then-local protocol shared with the other
// stores: auth gate, one remote call, local patch only on success.
type Store struct {
	remote remote.Store
	auth   auth.Provider
	clock  clock.Clock
	ident  ident.Generator
	logger *slog.Logger

	mu       sync.RWMutex
	subPages []model.SubPage
}

// New creates a new sub-pages store
func New(remote remote.Store, auth auth.Provider, clk clock.Clock, idg ident.Generator, logger *slog.Logger) *Store {
	return &Store{
		remote: remote,
		auth:   auth,
		clock:  clk,
		ident:  idg,
		logger: logger,
	}
}

// FetchAll replaces the whole local collection from the remote store
func (s *Store) FetchAll(ctx context.Context) error {
	return s.fetch(ctx, nil)
}

// FetchGroup refetches one group's sub-pages, leaving every other
// group's cached sub-pages untouched
func (s *Store) FetchGroup(ctx context.Context, groupID model.GroupID) error {
	return s.fetch(ctx, &groupID)
}

func (s *Store) fetch(ctx context.Context, groupID *model.GroupID) error {
	_, ok := s.auth.CurrentUserID()
	if !ok {
		return nil
	}

	fetched, err := s.remote.SelectSubPages(ctx)
	if err != nil {
		s.logger.Error("fetching sub-pages failed", slog.String("error", err.Error()))
		return err
	}

	if groupID != nil {
		filtered := fetched[:0]
		for _, sp := range fetched {
			if sp.GroupID == *groupID {
				filtered = append(filtered, sp)
			}
		}
		fetched = filtered
	}

	// Skip the attendance read entirely when there are no sub-pages;
	// an empty id filter would otherwise scan the whole relation.
	var attendance []model.Attendance
	if len(fetched) > 0 {
		ids := make([]model.SubPageID, len(fetched))
		for i, sp := range fetched {
			ids[i] = sp.ID
		}
		attendance, err = s.remote.SelectAttendance(ctx, ids)
		if err != nil {
			s.logger.Error("fetching attendance failed", slog.String("error", err.Error()))
			return err
		}
	}

	for i := range fetched {
		fetched[i].PresentPlayerIDs = []model.PlayerID{}
		for _, a := range attendance {
			if a.SubPageID == fetched[i].ID {
				fetched[i].PresentPlayerIDs = append(fetched[i].PresentPlayerIDs, a.PlayerID)
			}
		}
	}

	s.mu.Lock()
	if groupID != nil {
		merged := make([]model.SubPage, 0, len(s.subPages)+len(fetched))
		for _, sp := range s.subPages {
			if sp.GroupID != *groupID {
				merged = append(merged, sp)
			}
		}
		s.subPages = append(merged, fetched...)
	} else {
		s.subPages = fetched
	}
	s.mu.Unlock()
	return nil
}

// Add creates a sub-page remotely and, on success, appends it locally
// with empty attendance. The group is expected to exist at creation
// time; it is not re-validated afterward.
func (s *Store) Add(ctx context.Context, groupID model.GroupID, name string, date *time.Time) (model.SubPage, error) {
	_, ok := s.auth.CurrentUserID()
	if !ok {
		return model.SubPage{}, model.ErrUnauthenticated
	}

	subPage := model.SubPage{
		ID:               model.SubPageID(s.ident.NewID()),
		GroupID:          groupID,
		Name:             name,
		Date:             cloneDate(date),
		PresentPlayerIDs: []model.PlayerID{},
		CreatedAt:        s.clock.Now(),
	}

	if err := s.remote.InsertSubPage(ctx, subPage); err != nil {
		s.logger.Error("adding sub-page failed", slog.String("error", err.Error()))
		return model.SubPage{}, err
	}

	s.mu.Lock()
	s.subPages = append(s.subPages, subPage)
	s.mu.Unlock()
	return cloneSubPage(subPage), nil
}

// Update renames and redates a sub-page remotely and, on success,
// locally. A nil date clears the date.
func (s *Store) Update(ctx context.Context, id model.SubPageID, name string, date *time.Time) error {
	_, ok := s.auth.CurrentUserID()
	if !ok {
		return model.ErrUnauthenticated
	}

	if err := s.remote.UpdateSubPage(ctx, id, name, date); err != nil {
		s.logger.Error("updating sub-page failed", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	for i := range s.subPages {
		if s.subPages[i].ID == id {
			s.subPages[i].Name = name
			s.subPages[i].Date = cloneDate(date)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Delete removes a sub-page remotely and, on success, locally
func (s *Store) Delete(ctx context.Context, id model.SubPageID) error {
	_, ok := s.auth.CurrentUserID()
	if !ok {
		return model.ErrUnauthenticated
	}

	if err := s.remote.DeleteSubPage(ctx, id); err != nil {
		s.logger.Error("deleting sub-page failed", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	for i := range s.subPages {
		if s.subPages[i].ID == id {
			s.subPages = append(s.subPages[:i], s.subPages[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// AddPlayer marks a player present on a sub-page. If the player is
// already present in the local attendance no remote call is made.
func (s *Store) AddPlayer(ctx context.Context, subPageID model.SubPageID, playerID model.PlayerID) error {
	_, ok := s.auth.CurrentUserID()
	if !ok {
		return model.ErrUnauthenticated
	}

	s.mu.RLock()
	for i := range s.subPages {
		if s.subPages[i].ID == subPageID && s.subPages[i].HasPlayer(playerID) {
			s.mu.RUnlock()
			return nil
		}
	}
	s.mu.RUnlock()

	a := model.Attendance{SubPageID: subPageID, PlayerID: playerID}
	if err := s.remote.InsertAttendance(ctx, a); err != nil {
		s.logger.Error("adding player to sub-page failed", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	for i := range s.subPages {
		if s.subPages[i].ID == subPageID {
			s.subPages[i].PresentPlayerIDs = append(s.subPages[i].PresentPlayerIDs, playerID)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// RemovePlayer unmarks a player's presence on a sub-page
func (s *Store) RemovePlayer(ctx context.Context, subPageID model.SubPageID, playerID model.PlayerID) error {
	_, ok := s.auth.CurrentUserID()
	if !ok {
		return model.ErrUnauthenticated
	}

	if err := s.remote.DeleteAttendance(ctx, subPageID, playerID); err != nil {
		s.logger.Error("removing player from sub-page failed", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	for i := range s.subPages {
		if s.subPages[i].ID == subPageID {
			s.subPages[i].PresentPlayerIDs = removeID(s.subPages[i].PresentPlayerIDs, playerID)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// TogglePresent flips a player's presence on a sub-page. Unlike the
// group membership operations, the sub-page must exist locally.
func (s *Store) TogglePresent(ctx context.Context, subPageID model.SubPageID, playerID model.PlayerID) error {
	s.mu.RLock()
	var found *model.SubPage
	for i := range s.subPages {
		if s.subPages[i].ID == subPageID {
			found = &s.subPages[i]
			break
		}
	}
	if found == nil {
		s.mu.RUnlock()
		return model.ErrSubPageNotFound
	}
	present := found.HasPlayer(playerID)
	s.mu.RUnlock()

	if present {
		return s.RemovePlayer(ctx, subPageID, playerID)
	}
	return s.AddPlayer(ctx, subPageID, playerID)
}

// GetByID looks up a sub-page in the local collection
func (s *Store) GetByID(id model.SubPageID) (model.SubPage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.subPages {
		if s.subPages[i].ID == id {
			return cloneSubPage(s.subPages[i]), true
		}
	}
	return model.SubPage{}, false
}

// GetByGroupID returns a group's sub-pages sorted by creation time
// descending, newest first
func (s *Store) GetByGroupID(groupID model.GroupID) []model.SubPage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []model.SubPage
	for i := range s.subPages {
		if s.subPages[i].GroupID == groupID {
			result = append(result, cloneSubPage(s.subPages[i]))
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// All returns a copy of the local collection in store order
func (s *Store) All() []model.SubPage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.SubPage, len(s.subPages))
	for i := range s.subPages {
		result[i] = cloneSubPage(s.subPages[i])
	}
	return result
}

func cloneSubPage(sp model.SubPage) model.SubPage {
	clone := sp
	clone.Date = cloneDate(sp.Date)
	clone.PresentPlayerIDs = make([]model.PlayerID, len(sp.PresentPlayerIDs))
	copy(clone.PresentPlayerIDs, sp.PresentPlayerIDs)
	return clone
}

func cloneDate(date *time.Time) *time.Time {
	if date == nil {
		return nil
	}
	d := *date
	return &d
}

func removeID(ids []model.PlayerID, id model.PlayerID) []model.PlayerID {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

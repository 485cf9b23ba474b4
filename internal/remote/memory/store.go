package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bartdebruin-tp/matchmaker/internal/model"
	"github.com/bartdebruin-tp/matchmaker/internal/remote"
)

// Store is an in-memory implementation of the remote store interface.
// Row slices preserve insertion order so that selects are stable even
// when creation timestamps collide.
type Store struct {
	mu sync.RWMutex

	players     []playerRow
	groups      []groupRow
	memberships []model.GroupMembership
	active      map[model.UserID][]model.PlayerID
	subPages    []model.SubPage
	attendance  []model.Attendance
	users       map[model.UserID]model.User
	emailIndex  map[string]model.UserID
}

type playerRow struct {
	owner  model.UserID
	player model.Player
}

type groupRow struct {
	owner model.UserID
	group model.Group
}

// New creates a new in-memory store instance
func New() *Store {
	return &Store{
		active:     make(map[model.UserID][]model.PlayerID),
		users:      make(map[model.UserID]model.User),
		emailIndex: make(map[string]model.UserID),
	}
}

// Ensure Store implements the interface
var _ remote.Store = (*Store)(nil)

// Player operations

func (s *Store) SelectPlayers(ctx context.Context, owner model.UserID) ([]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var players []model.Player
	for _, row := range s.players {
		if row.owner == owner {
			players = append(players, row.player)
		}
	}
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].CreatedAt.Before(players[j].CreatedAt)
	})
	return players, nil
}

func (s *Store) InsertPlayer(ctx context.Context, owner model.UserID, player model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = append(s.players, playerRow{owner: owner, player: player})
	return nil
}

func (s *Store) UpdatePlayer(ctx context.Context, owner model.UserID, id model.PlayerID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.players {
		if s.players[i].owner == owner && s.players[i].player.ID == id {
			s.players[i].player.Name = name
		}
	}
	return nil
}

func (s *Store) DeletePlayer(ctx context.Context, owner model.UserID, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.players {
		if s.players[i].owner == owner && s.players[i].player.ID == id {
			s.players = append(s.players[:i], s.players[i+1:]...)
			s.cascadePlayer(owner, id)
			break
		}
	}
	return nil
}

// cascadePlayer removes relation rows referencing a deleted player.
// Caller must hold the write lock.
func (s *Store) cascadePlayer(owner model.UserID, id model.PlayerID) {
	memberships := s.memberships[:0]
	for _, m := range s.memberships {
		if m.PlayerID != id {
			memberships = append(memberships, m)
		}
	}
	s.memberships = memberships

	attendance := s.attendance[:0]
	for _, a := range s.attendance {
		if a.PlayerID != id {
			attendance = append(attendance, a)
		}
	}
	s.attendance = attendance

	s.active[owner] = removeID(s.active[owner], id)
}

// Group operations

func (s *Store) SelectGroups(ctx context.Context, owner model.UserID) ([]model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var groups []model.Group
	for _, row := range s.groups {
		if row.owner == owner {
			groups = append(groups, row.group)
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].CreatedAt.Before(groups[j].CreatedAt)
	})
	return groups, nil
}

func (s *Store) InsertGroup(ctx context.Context, owner model.UserID, group model.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	group.PlayerIDs = nil // membership lives in its own table
	s.groups = append(s.groups, groupRow{owner: owner, group: group})
	return nil
}

func (s *Store) UpdateGroup(ctx context.Context, owner model.UserID, id model.GroupID, name, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.groups {
		if s.groups[i].owner == owner && s.groups[i].group.ID == id {
			s.groups[i].group.Name = name
			s.groups[i].group.Color = color
		}
	}
	return nil
}

func (s *Store) DeleteGroup(ctx context.Context, owner model.UserID, id model.GroupID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := false
	for i := range s.groups {
		if s.groups[i].owner == owner && s.groups[i].group.ID == id {
			s.groups = append(s.groups[:i], s.groups[i+1:]...)
			deleted = true
			break
		}
	}
	if !deleted {
		return nil // filter matched no row; nothing to cascade
	}

	memberships := s.memberships[:0]
	for _, m := range s.memberships {
		if m.GroupID != id {
			memberships = append(memberships, m)
		}
	}
	s.memberships = memberships

	// Sub-pages belong to the group, so they cascade too
	subPages := s.subPages[:0]
	for _, sp := range s.subPages {
		if sp.GroupID != id {
			subPages = append(subPages, sp)
		} else {
			s.dropAttendance(sp.ID)
		}
	}
	s.subPages = subPages
	return nil
}

// Group membership relation

func (s *Store) SelectGroupMemberships(ctx context.Context) ([]model.GroupMembership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.GroupMembership, len(s.memberships))
	copy(result, s.memberships)
	return result, nil
}

func (s *Store) InsertGroupMembership(ctx context.Context, m model.GroupMembership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.memberships {
		if existing == m {
			return nil // uniqueness constraint: duplicate insert is a no-op
		}
	}
	s.memberships = append(s.memberships, m)
	return nil
}

func (s *Store) DeleteGroupMembership(ctx context.Context, groupID model.GroupID, playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.memberships {
		if m.GroupID == groupID && m.PlayerID == playerID {
			s.memberships = append(s.memberships[:i], s.memberships[i+1:]...)
			break
		}
	}
	return nil
}

// Active player operations

func (s *Store) SelectActivePlayers(ctx context.Context, owner model.UserID) ([]model.PlayerID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]model.PlayerID, len(s.active[owner]))
	copy(ids, s.active[owner])
	return ids, nil
}

func (s *Store) InsertActivePlayer(ctx context.Context, owner model.UserID, playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.active[owner] {
		if id == playerID {
			return nil
		}
	}
	s.active[owner] = append(s.active[owner], playerID)
	return nil
}

func (s *Store) DeleteActivePlayer(ctx context.Context, owner model.UserID, playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[owner] = removeID(s.active[owner], playerID)
	return nil
}

func (s *Store) DeleteActivePlayers(ctx context.Context, owner model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, owner)
	return nil
}

// Sub-page operations

func (s *Store) SelectSubPages(ctx context.Context) ([]model.SubPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.SubPage, len(s.subPages))
	copy(result, s.subPages)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) InsertSubPage(ctx context.Context, subPage model.SubPage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	subPage.PresentPlayerIDs = nil // attendance lives in its own table
	s.subPages = append(s.subPages, subPage)
	return nil
}

func (s *Store) UpdateSubPage(ctx context.Context, id model.SubPageID, name string, date *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.subPages {
		if s.subPages[i].ID == id {
			s.subPages[i].Name = name
			s.subPages[i].Date = date
		}
	}
	return nil
}

func (s *Store) DeleteSubPage(ctx context.Context, id model.SubPageID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.subPages {
		if s.subPages[i].ID == id {
			s.subPages = append(s.subPages[:i], s.subPages[i+1:]...)
			break
		}
	}
	s.dropAttendance(id)
	return nil
}

// dropAttendance removes all attendance rows for a sub-page.
// Caller must hold the write lock.
func (s *Store) dropAttendance(id model.SubPageID) {
	attendance := s.attendance[:0]
	for _, a := range s.attendance {
		if a.SubPageID != id {
			attendance = append(attendance, a)
		}
	}
	s.attendance = attendance
}

// Attendance relation

func (s *Store) SelectAttendance(ctx context.Context, subPageIDs []model.SubPageID) ([]model.Attendance, error) {
	if len(subPageIDs) == 0 {
		return nil, nil
	}
	wanted := make(map[model.SubPageID]struct{}, len(subPageIDs))
	for _, id := range subPageIDs {
		wanted[id] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []model.Attendance
	for _, a := range s.attendance {
		if _, ok := wanted[a.SubPageID]; ok {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *Store) InsertAttendance(ctx context.Context, a model.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.attendance {
		if existing == a {
			return nil // uniqueness constraint: duplicate insert is a no-op
		}
	}
	s.attendance = append(s.attendance, a)
	return nil
}

func (s *Store) DeleteAttendance(ctx context.Context, subPageID model.SubPageID, playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.attendance {
		if a.SubPageID == subPageID && a.PlayerID == playerID {
			s.attendance = append(s.attendance[:i], s.attendance[i+1:]...)
			break
		}
	}
	return nil
}

// User operations

func (s *Store) InsertUser(ctx context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	s.emailIndex[strings.ToLower(user.Email)] = user.ID
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[strings.ToLower(email)]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return user, nil
}

func removeID(ids []model.PlayerID, id model.PlayerID) []model.PlayerID {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

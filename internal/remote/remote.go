package remote

import (
	"context"
	"time"

	"github.com/bartdebruin-tp/matchmaker/internal/model"
)

// Store is the remote relational store capability. Each method maps to a
// single filtered operation against one table; every call either succeeds
// or returns the backend's error unchanged.
//
// Backends enforce uniqueness on the relation tables: inserting a
// (group, player) or (sub-page, player) pair that already exists is a
// no-op success, never an error.
type Store interface {
	// players table (owner-scoped)
	SelectPlayers(ctx context.Context, owner model.UserID) ([]model.Player, error)
	InsertPlayer(ctx context.Context, owner model.UserID, player model.Player) error
	UpdatePlayer(ctx context.Context, owner model.UserID, id model.PlayerID, name string) error
	DeletePlayer(ctx context.Context, owner model.UserID, id model.PlayerID) error

	// groups table (owner-scoped); PlayerIDs on returned groups is not
	// populated, the membership relation is read separately
	SelectGroups(ctx context.Context, owner model.UserID) ([]model.Group, error)
	InsertGroup(ctx context.Context, owner model.UserID, group model.Group) error
	UpdateGroup(ctx context.Context, owner model.UserID, id model.GroupID, name, color string) error
	DeleteGroup(ctx context.Context, owner model.UserID, id model.GroupID) error

	// group_players relation
	SelectGroupMemberships(ctx context.Context) ([]model.GroupMembership, error)
	InsertGroupMembership(ctx context.Context, m model.GroupMembership) error
	DeleteGroupMembership(ctx context.Context, groupID model.GroupID, playerID model.PlayerID) error

	// active_players table (owner-scoped)
	SelectActivePlayers(ctx context.Context, owner model.UserID) ([]model.PlayerID, error)
	InsertActivePlayer(ctx context.Context, owner model.UserID, playerID model.PlayerID) error
	DeleteActivePlayer(ctx context.Context, owner model.UserID, playerID model.PlayerID) error
	DeleteActivePlayers(ctx context.Context, owner model.UserID) error

	// sub_pages table; PresentPlayerIDs on returned sub-pages is not
	// populated, the attendance relation is read separately
	SelectSubPages(ctx context.Context) ([]model.SubPage, error)
	InsertSubPage(ctx context.Context, subPage model.SubPage) error
	UpdateSubPage(ctx context.Context, id model.SubPageID, name string, date *time.Time) error
	DeleteSubPage(ctx context.Context, id model.SubPageID) error

	// sub_page_players relation; SelectAttendance returns no rows when
	// subPageIDs is empty rather than scanning the whole table
	SelectAttendance(ctx context.Context, subPageIDs []model.SubPageID) ([]model.Attendance, error)
	InsertAttendance(ctx context.Context, a model.Attendance) error
	DeleteAttendance(ctx context.Context, subPageID model.SubPageID, playerID model.PlayerID) error

	// users table
	InsertUser(ctx context.Context, user model.User) error
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
}

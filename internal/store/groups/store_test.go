package groups

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/bartdebruin-tp/matchmaker/internal/auth"
	"github.com/bartdebruin-tp/matchmaker/internal/dependencies/mocks"
	"github.com/bartdebruin-tp/matchmaker/internal/model"
	"github.com/bartdebruin-tp/matchmaker/internal/remote"
	"github.com/bartdebruin-tp/matchmaker/internal/remote/memory"
	"github.com/bartdebruin-tp/matchmaker/internal/testutil"
)

// failingRemote wraps the memory store and fails selected operations
type failingRemote struct {
	remote.Store
	selectGroupsErr      error
	selectMembershipsErr error
	selectActiveErr      error
	insertMembershipErr  error
	insertMembershipN    int // number of InsertGroupMembership calls observed
}

func (f *failingRemote) SelectGroups(ctx context.Context, owner model.UserID) ([]model.Group, error) {
	if f.selectGroupsErr != nil {
		return nil, f.selectGroupsErr
	}
	return f.Store.SelectGroups(ctx, owner)
}

func (f *failingRemote) SelectGroupMemberships(ctx context.Context) ([]model.GroupMembership, error) {
	if f.selectMembershipsErr != nil {
		return nil, f.selectMembershipsErr
	}
	return f.Store.SelectGroupMemberships(ctx)
}

func (f *failingRemote) SelectActivePlayers(ctx context.Context, owner model.UserID) ([]model.PlayerID, error) {
	if f.selectActiveErr != nil {
		return nil, f.selectActiveErr
	}
	return f.Store.SelectActivePlayers(ctx, owner)
}

func (f *failingRemote) InsertGroupMembership(ctx context.Context, m model.GroupMembership) error {
	f.insertMembershipN++
	if f.insertMembershipErr != nil {
		return f.insertMembershipErr
	}
	return f.Store.InsertGroupMembership(ctx, m)
}

type StoreSuite struct {
	suite.Suite
	remote   *failingRemote
	provider *auth.Static
	clock    *mocks.MockClock
	ident    *mocks.MockIdent
	store    *Store
	ctx      context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.remote = &failingRemote{Store: memory.New()}
	s.provider = auth.NewStatic("user-1")
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.ident = mocks.NewMockIdent()
	s.store = New(s.remote, s.provider, s.clock, s.ident, testutil.NopLogger())
	s.ctx = context.Background()
}

// Add tests

func (s *StoreSuite) TestAddDefaultsToRandomMatchType() {
	s.ident.QueueIDs("g-1")

	group, err := s.store.Add(s.ctx, "Red", "#ff0000")
	s.Require().NoError(err)
	s.Equal(model.GroupID("g-1"), group.ID)
	s.Equal(model.MatchTypeRandom, group.MatchType)
	s.NotNil(group.PlayerIDs)
	s.Empty(group.PlayerIDs)
}

func (s *StoreSuite) TestAddWithoutUserFails() {
	s.provider.SignOut()

	_, err := s.store.Add(s.ctx, "Red", "")
	s.ErrorIs(err, model.ErrUnauthenticated)
	s.Empty(s.store.All())
}

// FetchAll tests

func (s *StoreSuite) TestFetchAllBuildsMembershipFromRelation() {
	base := s.clock.CurrentTime
	s.Require().NoError(s.remote.Store.InsertGroup(s.ctx, "user-1", model.Group{ID: "g-1", Name: "Red", MatchType: model.MatchTypeRandom, CreatedAt: base}))
	s.Require().NoError(s.remote.Store.InsertGroupMembership(s.ctx, model.GroupMembership{GroupID: "g-1", PlayerID: "p-2"}))
	s.Require().NoError(s.remote.Store.InsertGroupMembership(s.ctx, model.GroupMembership{GroupID: "g-1", PlayerID: "p-1"}))
	s.Require().NoError(s.remote.Store.InsertActivePlayer(s.ctx, "user-1", "p-1"))

	err := s.store.FetchAll(s.ctx)
	s.Require().NoError(err)

	group, ok := s.store.GetByID("g-1")
	s.Require().True(ok)
	s.Equal([]model.PlayerID{"p-2", "p-1"}, group.PlayerIDs)
	s.Equal([]model.PlayerID{"p-1"}, s.store.ActivePlayers())
}

func (s *StoreSuite) TestFetchAllIgnoresForeignMembershipRows() {
	base := s.clock.CurrentTime
	s.Require().NoError(s.remote.Store.InsertGroup(s.ctx, "user-1", model.Group{ID: "g-1", Name: "Red", CreatedAt: base}))
	// Relation row for a group this user does not own
	s.Require().NoError(s.remote.Store.InsertGroupMembership(s.ctx, model.GroupMembership{GroupID: "g-foreign", PlayerID: "p-9"}))

	err := s.store.FetchAll(s.ctx)
	s.Require().NoError(err)

	group, ok := s.store.GetByID("g-1")
	s.Require().True(ok)
	s.Empty(group.PlayerIDs)
}

func (s *StoreSuite) TestFetchAllWithoutUserIsNoop() {
	s.ident.QueueIDs("g-1")
	_, err := s.store.Add(s.ctx, "Red", "")
	s.Require().NoError(err)

	s.provider.SignOut()

	err = s.store.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Len(s.store.All(), 1)
}

func (s *StoreSuite) TestFetchAllCommitsNothingWhenSecondReadFails() {
	s.ident.QueueIDs("g-1")
	_, err := s.store.Add(s.ctx, "Red", "")
	s.Require().NoError(err)
	s.Require().NoError(s.store.SetActivePlayer(s.ctx, "p-1", true))

	s.Require().NoError(s.remote.Store.InsertGroup(s.ctx, "user-1", model.Group{ID: "g-2", Name: "Blue", CreatedAt: s.clock.CurrentTime}))
	s.remote.selectMembershipsErr = errors.New("boom")

	err = s.store.FetchAll(s.ctx)
	s.Require().Error(err)

	// Neither the groups nor the active set moved
	s.Len(s.store.All(), 1)
	s.Equal([]model.PlayerID{"p-1"}, s.store.ActivePlayers())
}

func (s *StoreSuite) TestFetchAllCommitsNothingWhenThirdReadFails() {
	s.ident.QueueIDs("g-1")
	_, err := s.store.Add(s.ctx, "Red", "")
	s.Require().NoError(err)

	s.remote.selectActiveErr = errors.New("boom")
	s.Require().NoError(s.remote.Store.DeleteGroup(s.ctx, "user-1", "g-1"))

	err = s.store.FetchAll(s.ctx)
	s.Require().Error(err)
	s.Len(s.store.All(), 1)
}

// Membership tests

func (s *StoreSuite) TestAddPlayerAppendsMembership() {
	s.ident.QueueIDs("g-1")
	_, err := s.store.Add(s.ctx, "Red", "")
	s.Require().NoError(err)

	err = s.store.AddPlayer(s.ctx, "g-1", "p-1")
	s.Require().NoError(err)

	group, _ := s.store.GetByID("g-1")
	s.Equal([]model.PlayerID{"p-1"}, group.PlayerIDs)

	memberships, _ := s.remote.Store.SelectGroupMemberships(s.ctx)
	s.Len(memberships, 1)
}

func (s *StoreSuite) TestAddPlayerAlreadyMemberSkipsRemoteCall() {
	s.ident.QueueIDs("g-1")
	_, err := s.store.Add(s.ctx, "Red", "")
	s.Require().NoError(err)

	s.Require().NoError(s.store.AddPlayer(s.ctx, "g-1", "p-1"))
	s.Require().NoError(s.store.AddPlayer(s.ctx, "g-1", "p-1"))

	s.Equal(1, s.remote.insertMembershipN)

	group, _ := s.store.GetByID("g-1")
	s.Equal([]model.PlayerID{"p-1"}, group.PlayerIDs)
}

func (s *StoreSuite) TestAddPlayerToleratesUnknownGroup() {
	err := s.store.AddPlayer(s.ctx, "g-unknown", "p-1")
	s.Require().NoError(err)

	// The relation row is written remotely even with no local group
	memberships, _ := s.remote.Store.SelectGroupMemberships(s.ctx)
	s.Len(memberships, 1)
}

func (s *StoreSuite) TestAddPlayerRemoteFailureLeavesLocalUntouched() {
	s.ident.QueueIDs("g-1")
	_, err := s.store.Add(s.ctx, "Red", "")
	s.Require().NoError(err)

	s.remote.insertMembershipErr = errors.New("boom")

	err = s.store.AddPlayer(s.ctx, "g-1", "p-1")
	s.Require().Error(err)

	group, _ := s.store.GetByID("g-1")
	s.Empty(group.PlayerIDs)
}

func (s *StoreSuite) TestRemovePlayerDropsMembership() {
	s.ident.QueueIDs("g-1")
	_, err := s.store.Add(s.ctx, "Red", "")
	s.Require().NoError(err)
	s.Require().NoError(s.store.AddPlayer(s.ctx, "g-1", "p-1"))

	err = s.store.RemovePlayer(s.ctx, "g-1", "p-1")
	s.Require().NoError(err)

	group, _ := s.store.GetByID("g-1")
	s.Empty(group.PlayerIDs)

	memberships, _ := s.remote.Store.SelectGroupMemberships(s.ctx)
	s.Empty(memberships)
}

// Active player tests

func (s *StoreSuite) TestToggleActivePlayer() {
	s.Require().NoError(s.store.ToggleActivePlayer(s.ctx, "p-1"))
	s.True(s.store.IsActive("p-1"))

	s.Require().NoError(s.store.ToggleActivePlayer(s.ctx, "p-1"))
	s.False(s.store.IsActive("p-1"))
}

func (s *StoreSuite) TestActivePlayersPreserveActivationOrder() {
	s.Require().NoError(s.store.SetActivePlayer(s.ctx, "p-2", true))
	s.Require().NoError(s.store.SetActivePlayer(s.ctx, "p-1", true))

	s.Equal([]model.PlayerID{"p-2", "p-1"}, s.store.ActivePlayers())
}

func (s *StoreSuite) TestClearActivePlayers() {
	s.Require().NoError(s.store.SetActivePlayer(s.ctx, "p-1", true))
	s.Require().NoError(s.store.SetActivePlayer(s.ctx, "p-2", true))

	s.Require().NoError(s.store.ClearActivePlayers(s.ctx))
	s.Empty(s.store.ActivePlayers())

	active, _ := s.remote.Store.SelectActivePlayers(s.ctx, "user-1")
	s.Empty(active)
}

func (s *StoreSuite) TestActiveSetSurvivesRefetch() {
	s.Require().NoError(s.store.SetActivePlayer(s.ctx, "p-2", true))
	s.Require().NoError(s.store.SetActivePlayer(s.ctx, "p-1", true))

	s.Require().NoError(s.store.FetchAll(s.ctx))
	s.Equal([]model.PlayerID{"p-2", "p-1"}, s.store.ActivePlayers())
}

// Lookup tests

func (s *StoreSuite) TestGetByPlayerID() {
	s.ident.QueueIDs("g-1", "g-2")
	_, err := s.store.Add(s.ctx, "Red", "")
	s.Require().NoError(err)
	_, err = s.store.Add(s.ctx, "Blue", "")
	s.Require().NoError(err)

	s.Require().NoError(s.store.AddPlayer(s.ctx, "g-1", "p-1"))
	s.Require().NoError(s.store.AddPlayer(s.ctx, "g-2", "p-1"))
	s.Require().NoError(s.store.AddPlayer(s.ctx, "g-2", "p-2"))

	groups := s.store.GetByPlayerID("p-1")
	s.Require().Len(groups, 2)
	s.Equal(model.GroupID("g-1"), groups[0].ID)
	s.Equal(model.GroupID("g-2"), groups[1].ID)

	groups = s.store.GetByPlayerID("p-2")
	s.Require().Len(groups, 1)
	s.Equal(model.GroupID("g-2"), groups[0].ID)
}

func (s *StoreSuite) TestAllReturnsDeepCopies() {
	s.ident.QueueIDs("g-1")
	_, err := s.store.Add(s.ctx, "Red", "")
	s.Require().NoError(err)
	s.Require().NoError(s.store.AddPlayer(s.ctx, "g-1", "p-1"))

	groups := s.store.All()
	groups[0].PlayerIDs[0] = "p-mutated"

	group, _ := s.store.GetByID("g-1")
	s.Equal([]model.PlayerID{"p-1"}, group.PlayerIDs)
}

package players

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
	selectErr error
	insertErr error
	updateErr error
	deleteErr error
}

func (f *failingRemote) SelectPlayers(ctx context.Context, owner model.UserID) ([]model.Player, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	return f.Store.SelectPlayers(ctx, owner)
}

func (f *failingRemote) InsertPlayer(ctx context.Context, owner model.UserID, player model.Player) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	return f.Store.InsertPlayer(ctx, owner, player)
}

func (f *failingRemote) UpdatePlayer(ctx context.Context, owner model.UserID, id model.PlayerID, name string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	return f.Store.UpdatePlayer(ctx, owner, id, name)
}

func (f *failingRemote) DeletePlayer(ctx context.Context, owner model.UserID, id model.PlayerID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.Store.DeletePlayer(ctx, owner, id)
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

func (s *StoreSuite) TestAddCreatesPlayerRemotelyAndLocally() {
	s.ident.QueueIDs("p-1")

	player, err := s.store.Add(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p-1"), player.ID)
	s.Equal("Alice", player.Name)
	s.Equal(s.clock.CurrentTime, player.CreatedAt)

	local := s.store.All()
	s.Require().Len(local, 1)
	s.Equal(player, local[0])

	stored, err := s.remote.SelectPlayers(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Require().Len(stored, 1)
	s.Equal(player.ID, stored[0].ID)
}

func (s *StoreSuite) TestAddWithoutUserFails() {
	s.provider.SignOut()

	_, err := s.store.Add(s.ctx, "Alice")
	s.ErrorIs(err, model.ErrUnauthenticated)
	s.Empty(s.store.All())
}

func (s *StoreSuite) TestAddRemoteFailureLeavesLocalUntouched() {
	s.remote.insertErr = errors.New("boom")

	_, err := s.store.Add(s.ctx, "Alice")
	s.Require().Error(err)
	s.Empty(s.store.All())
}

// FetchAll tests

func (s *StoreSuite) TestFetchAllReplacesLocalCollection() {
	base := s.clock.CurrentTime
	s.Require().NoError(s.remote.Store.InsertPlayer(s.ctx, "user-1", model.Player{ID: "p-1", Name: "Alice", CreatedAt: base}))
	s.Require().NoError(s.remote.Store.InsertPlayer(s.ctx, "user-1", model.Player{ID: "p-2", Name: "Bob", CreatedAt: base.Add(time.Minute)}))

	err := s.store.FetchAll(s.ctx)
	s.Require().NoError(err)

	local := s.store.All()
	s.Require().Len(local, 2)
	s.Equal(model.PlayerID("p-1"), local[0].ID)
	s.Equal(model.PlayerID("p-2"), local[1].ID)
}

func (s *StoreSuite) TestFetchAllWithoutUserIsNoop() {
	s.ident.QueueIDs("p-1")
	_, err := s.store.Add(s.ctx, "Alice")
	s.Require().NoError(err)

	s.provider.SignOut()

	err = s.store.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Len(s.store.All(), 1)
}

func (s *StoreSuite) TestFetchAllRemoteFailureLeavesLocalUntouched() {
	s.ident.QueueIDs("p-1")
	_, err := s.store.Add(s.ctx, "Alice")
	s.Require().NoError(err)

	s.remote.selectErr = errors.New("boom")

	err = s.store.FetchAll(s.ctx)
	s.Require().Error(err)
	s.Len(s.store.All(), 1)
}

func (s *StoreSuite) TestFetchAllDropsRowsDeletedRemotely() {
	s.ident.QueueIDs("p-1")
	_, err := s.store.Add(s.ctx, "Alice")
	s.Require().NoError(err)

	s.Require().NoError(s.remote.Store.DeletePlayer(s.ctx, "user-1", "p-1"))

	err = s.store.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(s.store.All())
}

// Update tests

func (s *StoreSuite) TestUpdateRenamesPlayer() {
	s.ident.QueueIDs("p-1")
	_, err := s.store.Add(s.ctx, "Alice")
	s.Require().NoError(err)

	err = s.store.Update(s.ctx, "p-1", "Alicia")
	s.Require().NoError(err)

	player, ok := s.store.GetByID("p-1")
	s.Require().True(ok)
	s.Equal("Alicia", player.Name)
}

func (s *StoreSuite) TestUpdateMissingLocallyStillUpdatesRemote() {
	s.Require().NoError(s.remote.Store.InsertPlayer(s.ctx, "user-1", model.Player{ID: "p-1", Name: "Alice", CreatedAt: s.clock.CurrentTime}))

	err := s.store.Update(s.ctx, "p-1", "Alicia")
	s.Require().NoError(err)

	stored, _ := s.remote.SelectPlayers(s.ctx, "user-1")
	s.Require().Len(stored, 1)
	s.Equal("Alicia", stored[0].Name)
}

func (s *StoreSuite) TestUpdateRemoteFailureLeavesLocalUntouched() {
	s.ident.QueueIDs("p-1")
	_, err := s.store.Add(s.ctx, "Alice")
	s.Require().NoError(err)

	s.remote.updateErr = errors.New("boom")

	err = s.store.Update(s.ctx, "p-1", "Alicia")
	s.Require().Error(err)

	player, _ := s.store.GetByID("p-1")
	s.Equal("Alice", player.Name)
}

// Delete tests

func (s *StoreSuite) TestDeleteRemovesPlayer() {
	s.ident.QueueIDs("p-1")
	_, err := s.store.Add(s.ctx, "Alice")
	s.Require().NoError(err)

	err = s.store.Delete(s.ctx, "p-1")
	s.Require().NoError(err)

	s.Empty(s.store.All())
	stored, _ := s.remote.SelectPlayers(s.ctx, "user-1")
	s.Empty(stored)
}

func (s *StoreSuite) TestDeleteRemoteFailureLeavesLocalUntouched() {
	s.ident.QueueIDs("p-1")
	_, err := s.store.Add(s.ctx, "Alice")
	s.Require().NoError(err)

	s.remote.deleteErr = errors.New("boom")

	err = s.store.Delete(s.ctx, "p-1")
	s.Require().Error(err)
	s.Len(s.store.All(), 1)
}

// Lookup tests

func (s *StoreSuite) TestGetByIDMissing() {
	_, ok := s.store.GetByID("p-missing")
	s.False(ok)
}

func (s *StoreSuite) TestGetByIDsPreservesInputOrder() {
	s.ident.QueueIDs("p-1", "p-2", "p-3")
	for _, name := range []string{"Alice", "Bob", "Cara"} {
		_, err := s.store.Add(s.ctx, name)
		s.Require().NoError(err)
	}

	result := s.store.GetByIDs([]model.PlayerID{"p-3", "p-1"})
	s.Require().Len(result, 2)
	s.Equal(model.PlayerID("p-3"), result[0].ID)
	s.Equal(model.PlayerID("p-1"), result[1].ID)
}

func (s *StoreSuite) TestGetByIDsOmitsUnknownIDs() {
	s.ident.QueueIDs("p-1")
	_, err := s.store.Add(s.ctx, "Alice")
	s.Require().NoError(err)

	result := s.store.GetByIDs([]model.PlayerID{"p-missing", "p-1"})
	s.Require().Len(result, 1)
	s.Equal(model.PlayerID("p-1"), result[0].ID)
}

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/bartdebruin-tp/matchmaker/internal/dependencies/mocks"
	"github.com/bartdebruin-tp/matchmaker/internal/remote/memory"
	"github.com/bartdebruin-tp/matchmaker/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	store   *memory.Store
	clock   *mocks.MockClock
	ident   *mocks.MockIdent
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.ident = mocks.NewMockIdent()
	s.service = New(s.store, s.clock, s.ident, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	session, err := s.service.Register(s.ctx, "alice@example.com", "secret")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.NotEmpty(session.UserID)
	s.Equal("alice@example.com", session.Email)
}

func (s *ServiceSuite) TestRegisterNormalizesEmail() {
	session, err := s.service.Register(s.ctx, "  Alice@Example.COM ", "secret")
	s.Require().NoError(err)
	s.Equal("alice@example.com", session.Email)
}

func (s *ServiceSuite) TestRegisterDuplicateEmailFails() {
	_, err := s.service.Register(s.ctx, "alice@example.com", "secret")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "alice@example.com", "other")
	s.ErrorIs(err, ErrEmailExists)
}

func (s *ServiceSuite) TestRegisterDoesNotStorePlaintextPassword() {
	_, err := s.service.Register(s.ctx, "alice@example.com", "secret")
	s.Require().NoError(err)

	user, err := s.store.GetUserByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.NotEmpty(user.PasswordHash)
	s.NotEqual("secret", user.PasswordHash)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	registered, err := s.service.Register(s.ctx, "alice@example.com", "secret")
	s.Require().NoError(err)

	session, err := s.service.Login(s.ctx, "alice@example.com", "secret")
	s.Require().NoError(err)
	s.Equal(registered.UserID, session.UserID)
	s.NotEqual(registered.Token, session.Token)
}

func (s *ServiceSuite) TestLoginWrongPasswordFails() {
	_, err := s.service.Register(s.ctx, "alice@example.com", "secret")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "alice@example.com", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownEmailFails() {
	_, err := s.service.Login(s.ctx, "nobody@example.com", "secret")
	s.ErrorIs(err, ErrInvalidCredentials)
}

// Session tests

func (s *ServiceSuite) TestValidateSessionSucceeds() {
	session, _ := s.service.Register(s.ctx, "alice@example.com", "secret")

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(session.UserID, validated.UserID)
}

func (s *ServiceSuite) TestValidateSessionUnknownTokenFails() {
	_, err := s.service.ValidateSession("bogus")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionExpires() {
	session, _ := s.service.Register(s.ctx, "alice@example.com", "secret")

	s.clock.Advance(25 * time.Hour)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestLogoutInvalidatesSession() {
	session, _ := s.service.Register(s.ctx, "alice@example.com", "secret")

	s.service.Logout(session.Token)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

// CurrentUserID tests

func (s *ServiceSuite) TestCurrentUserIDWithoutSession() {
	_, ok := s.service.CurrentUserID()
	s.False(ok)
}

func (s *ServiceSuite) TestCurrentUserIDTracksLiveSession() {
	session, _ := s.service.Register(s.ctx, "alice@example.com", "secret")

	id, ok := s.service.CurrentUserID()
	s.True(ok)
	s.Equal(session.UserID, id)
}

func (s *ServiceSuite) TestCurrentUserIDFollowsMostRecentLogin() {
	_, err := s.service.Register(s.ctx, "alice@example.com", "secret")
	s.Require().NoError(err)
	bob, err := s.service.Register(s.ctx, "bob@example.com", "secret")
	s.Require().NoError(err)

	id, ok := s.service.CurrentUserID()
	s.True(ok)
	s.Equal(bob.UserID, id)
}

func (s *ServiceSuite) TestCurrentUserIDClearedByLogout() {
	session, _ := s.service.Register(s.ctx, "alice@example.com", "secret")

	s.service.Logout(session.Token)

	_, ok := s.service.CurrentUserID()
	s.False(ok)
}

func (s *ServiceSuite) TestCurrentUserIDClearedByExpiry() {
	_, err := s.service.Register(s.ctx, "alice@example.com", "secret")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)

	_, ok := s.service.CurrentUserID()
	s.False(ok)
}

package auth

import "github.com/bartdebruin-tp/matchmaker/internal/model"

// Provider supplies the current user identity. Every remote-backed store
// operation consults it at call time and fails closed when no user is
// signed in.
type Provider interface {
	// CurrentUserID returns the signed-in user's id, or false if none
	CurrentUserID() (model.UserID, bool)
}

// Static is a fixed-identity provider for tests and local tooling
type Static struct {
	UserID model.UserID
	Ok     bool
}

// Ensure Static implements Provider
var _ Provider = (*Static)(nil)

// NewStatic creates a Static provider signed in as the given user
func NewStatic(id model.UserID) *Static {
	return &Static{UserID: id, Ok: true}
}

// CurrentUserID returns the configured identity
func (s *Static) CurrentUserID() (model.UserID, bool) {
	return s.UserID, s.Ok
}

// SignOut clears the identity
func (s *Static) SignOut() {
	s.UserID = ""
	s.Ok = false
}

// SignIn sets the identity
func (s *Static) SignIn(id model.UserID) {
	s.UserID = id
	s.Ok = true
}

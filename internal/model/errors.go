package model

import "errors"

// Common errors used across the application
var (
	// ErrUnauthenticated is returned by every remote-backed mutation
	// when no user is signed in. No remote call is made in that case.
	ErrUnauthenticated = errors.New("not authenticated")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Group errors
	ErrGroupNotFound = errors.New("group not found")

	// Sub-page errors
	ErrSubPageNotFound = errors.New("sub-page not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")
)

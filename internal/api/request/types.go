package request

import "time"

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreatePlayerRequest is the request body for adding a player
type CreatePlayerRequest struct {
	Name string `json:"name"`
}

// UpdatePlayerRequest is the request body for renaming a player
type UpdatePlayerRequest struct {
	Name string `json:"name"`
}

// CreateGroupRequest is the request body for adding a group
type CreateGroupRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// UpdateGroupRequest is the request body for updating a group
type UpdateGroupRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CreateSubPageRequest is the request body for adding a sub-page
type CreateSubPageRequest struct {
	GroupID string     `json:"group_id"`
	Name    string     `json:"name"`
	Date    *time.Time `json:"date,omitempty"`
}

// UpdateSubPageRequest is the request body for updating a sub-page.
// A missing date clears the stored date.
type UpdateSubPageRequest struct {
	Name string     `json:"name"`
	Date *time.Time `json:"date,omitempty"`
}

// SetActivePlayerRequest is the request body for marking a player active
// or inactive
type SetActivePlayerRequest struct {
	Active bool `json:"active"`
}

// GenerateMatchesRequest is the request body for generating matches.
// With no player ids the active-player set is used.
type GenerateMatchesRequest struct {
	PlayerIDs []string `json:"player_ids,omitempty"`
}

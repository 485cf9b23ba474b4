package model

import "time"

// UserID identifies the authenticated owner of a roster
type UserID string

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player is a roster entry owned by a single user
type Player struct {
	ID        PlayerID
	Name      string
	CreatedAt time.Time
}

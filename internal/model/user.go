package model

import "time"

// User is an account that owns players, groups and active-player state
type User struct {
	ID           UserID
	Email        string
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
}

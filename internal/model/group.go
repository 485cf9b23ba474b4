package model

import "time"

// GroupID uniquely identifies a group
type GroupID string

// MatchType selects how matches are produced for a group
type MatchType string

const (
	MatchTypeRandom    MatchType = "random"    // Shuffled doubles pairings
	MatchTypeScheduled MatchType = "scheduled" // Fixed, dated sessions
)

// Group is a named collection of players with a display color.
// PlayerIDs is an ordered set: insertion order is preserved and a
// player appears at most once.
type Group struct {
	ID        GroupID
	Name      string
	Color     string
	MatchType MatchType
	PlayerIDs []PlayerID
	CreatedAt time.Time
}

// HasPlayer reports whether the player is a member of the group
func (g *Group) HasPlayer(id PlayerID) bool {
	for _, pid := range g.PlayerIDs {
		if pid == id {
			return true
		}
	}
	return false
}

package model

import "time"

// TeamID uniquely identifies a generated team
type TeamID string

// MatchID uniquely identifies a generated match
type MatchID string

// Team is a doubles pairing of two players
type Team struct {
	ID        TeamID
	Player1ID PlayerID
	Player2ID PlayerID
}

// Match pits two teams against each other. Matches are derived from a
// player list on demand and never persisted; regeneration replaces the
// whole set.
type Match struct {
	ID        MatchID
	Team1     Team
	Team2     Team
	CreatedAt time.Time
}

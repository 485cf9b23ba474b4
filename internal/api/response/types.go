package response

import (
	"time"

	"github.com/bartdebruin-tp/matchmaker/internal/auth"
	"github.com/bartdebruin-tp/matchmaker/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:        string(p.ID),
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
}

// PlayersFromModel converts a player list
func PlayersFromModel(players []model.Player) []Player {
	result := make([]Player, len(players))
	for i, p := range players {
		result[i] = PlayerFromModel(p)
	}
	return result
}

// Group represents a group in API responses
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	MatchType string    `json:"match_type"`
	PlayerIDs []string  `json:"player_ids"`
	CreatedAt time.Time `json:"created_at"`
}

// GroupFromModel converts a model.Group to a response Group
func GroupFromModel(g model.Group) Group {
	playerIDs := make([]string, len(g.PlayerIDs))
	for i, id := range g.PlayerIDs {
		playerIDs[i] = string(id)
	}
	return Group{
		ID:        string(g.ID),
		Name:      g.Name,
		Color:     g.Color,
		MatchType: string(g.MatchType),
		PlayerIDs: playerIDs,
		CreatedAt: g.CreatedAt,
	}
}

// GroupsFromModel converts a group list
func GroupsFromModel(groups []model.Group) []Group {
	result := make([]Group, len(groups))
	for i, g := range groups {
		result[i] = GroupFromModel(g)
	}
	return result
}

// SubPage represents a sub-page in API responses
type SubPage struct {
	ID               string     `json:"id"`
	GroupID          string     `json:"group_id"`
	Name             string     `json:"name"`
	Date             *time.Time `json:"date,omitempty"`
	PresentPlayerIDs []string   `json:"present_player_ids"`
	CreatedAt        time.Time  `json:"created_at"`
}

// SubPageFromModel converts a model.SubPage to a response SubPage
func SubPageFromModel(sp model.SubPage) SubPage {
	present := make([]string, len(sp.PresentPlayerIDs))
	for i, id := range sp.PresentPlayerIDs {
		present[i] = string(id)
	}
	return SubPage{
		ID:               string(sp.ID),
		GroupID:          string(sp.GroupID),
		Name:             sp.Name,
		Date:             sp.Date,
		PresentPlayerIDs: present,
		CreatedAt:        sp.CreatedAt,
	}
}

// SubPagesFromModel converts a sub-page list
func SubPagesFromModel(subPages []model.SubPage) []SubPage {
	result := make([]SubPage, len(subPages))
	for i, sp := range subPages {
		result[i] = SubPageFromModel(sp)
	}
	return result
}

// Team represents a generated team
type Team struct {
	ID        string `json:"id"`
	Player1ID string `json:"player1_id"`
	Player2ID string `json:"player2_id"`
}

// Match represents a generated match
type Match struct {
	ID        string    `json:"id"`
	Team1     Team      `json:"team1"`
	Team2     Team      `json:"team2"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchFromModel converts a model.Match to a response Match
func MatchFromModel(m model.Match) Match {
	return Match{
		ID: string(m.ID),
		Team1: Team{
			ID:        string(m.Team1.ID),
			Player1ID: string(m.Team1.Player1ID),
			Player2ID: string(m.Team1.Player2ID),
		},
		Team2: Team{
			ID:        string(m.Team2.ID),
			Player1ID: string(m.Team2.Player1ID),
			Player2ID: string(m.Team2.Player2ID),
		},
		CreatedAt: m.CreatedAt,
	}
}

// MatchesFromModel converts a match list
func MatchesFromModel(matches []model.Match) []Match {
	result := make([]Match, len(matches))
	for i, m := range matches {
		result[i] = MatchFromModel(m)
	}
	return result
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		UserID:       string(s.UserID),
		Email:        s.Email,
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printPlayers(v)
	case Group:
		o.printGroup(v)
	case []Group:
		o.printGroups(v)
	case SubPage:
		o.printSubPage(v)
	case []SubPage:
		o.printSubPages(v)
	case []Match:
		o.printMatches(v)
	case AuthResult:
		o.printAuthResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Group response type
type Group struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Color     string   `json:"color"`
	MatchType string   `json:"match_type"`
	PlayerIDs []string `json:"player_ids"`
}

// SubPage response type
type SubPage struct {
	ID               string     `json:"id"`
	GroupID          string     `json:"group_id"`
	Name             string     `json:"name"`
	Date             *time.Time `json:"date"`
	PresentPlayerIDs []string   `json:"present_player_ids"`
}

// Team response type
type Team struct {
	ID        string `json:"id"`
	Player1ID string `json:"player1_id"`
	Player2ID string `json:"player2_id"`
}

// Match response type
type Match struct {
	ID    string `json:"id"`
	Team1 Team   `json:"team1"`
	Team2 Team   `json:"team2"`
}

// AuthResult response type
type AuthResult struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	SessionToken string `json:"session_token"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.Name, p.ID)
}

func (o *Output) printPlayers(players []Player) {
	fmt.Printf("Players (%d):\n", len(players))
	for _, p := range players {
		fmt.Printf("  - %s (%s)\n", p.Name, p.ID)
	}
}

func (o *Output) printGroup(g Group) {
	fmt.Printf("Group: %s (%s)\n", g.Name, g.ID)
	if g.Color != "" {
		fmt.Printf("Color: %s\n", g.Color)
	}
	fmt.Printf("Match Type: %s\n", g.MatchType)
	fmt.Printf("Members (%d): %s\n", len(g.PlayerIDs), strings.Join(g.PlayerIDs, ", "))
}

func (o *Output) printGroups(groups []Group) {
	fmt.Printf("Groups (%d):\n", len(groups))
	for _, g := range groups {
		fmt.Printf("  - %s (%s) - %d members\n", g.Name, g.ID, len(g.PlayerIDs))
	}
}

func (o *Output) printSubPage(sp SubPage) {
	fmt.Printf("Sub-page: %s (%s)\n", sp.Name, sp.ID)
	fmt.Printf("Group: %s\n", sp.GroupID)
	if sp.Date != nil {
		fmt.Printf("Date: %s\n", sp.Date.Format("2006-01-02"))
	}
	fmt.Printf("Present (%d): %s\n", len(sp.PresentPlayerIDs), strings.Join(sp.PresentPlayerIDs, ", "))
}

func (o *Output) printSubPages(subPages []SubPage) {
	fmt.Printf("Sub-pages (%d):\n", len(subPages))
	for _, sp := range subPages {
		date := "no date"
		if sp.Date != nil {
			date = sp.Date.Format("2006-01-02")
		}
		fmt.Printf("  - %s (%s) - %s, %d present\n", sp.Name, sp.ID, date, len(sp.PresentPlayerIDs))
	}
}

func (o *Output) printMatches(matches []Match) {
	fmt.Printf("Matches (%d):\n", len(matches))
	for i, m := range matches {
		fmt.Printf("  Match %d:\n", i+1)
		fmt.Printf("    Team 1: %s + %s\n", m.Team1.Player1ID, m.Team1.Player2ID)
		fmt.Printf("    Team 2: %s + %s\n", m.Team2.Player1ID, m.Team2.Player2ID)
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Printf("User: %s (%s)\n", a.Email, a.UserID)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

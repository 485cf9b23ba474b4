package match

import (
	"github.com/bartdebruin-tp/matchmaker/internal/dependencies/clock"
	"github.com/bartdebruin-tp/matchmaker/internal/dependencies/ident"
	"github.com/bartdebruin-tp/matchmaker/internal/dependencies/random"
	"github.com/bartdebruin-tp/matchmaker/internal/model"
)

// PlayersPerMatch is the number of players consumed by one doubles match
const PlayersPerMatch = 4

// Generator produces random doubles pairings from a player list.
// Matches are ephemeral: each call regenerates the whole set and nothing
// is persisted.
type Generator struct {
	clock  clock.Clock
	ident  ident.Generator
	random random.Random
}

// NewGenerator creates a new match generator
func NewGenerator(clk clock.Clock, idg ident.Generator, rnd random.Random) *Generator {
	return &Generator{
		clock:  clk,
		ident:  idg,
		random: rnd,
	}
}

// Generate shuffles the players and pairs each run of four into two
// teams of two. Fewer than four players yields no matches; leftover
// players sit the round out.
func (g *Generator) Generate(players []model.Player) []model.Match {
	if len(players) < PlayersPerMatch {
		return nil
	}

	shuffled := make([]model.Player, len(players))
	copy(shuffled, players)
	random.Shuffle(g.random, len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	var matches []model.Match
	for i := 0; i+PlayersPerMatch <= len(shuffled); i += PlayersPerMatch {
		team1 := model.Team{
			ID:        model.TeamID(g.ident.NewID()),
			Player1ID: shuffled[i].ID,
			Player2ID: shuffled[i+1].ID,
		}
		team2 := model.Team{
			ID:        model.TeamID(g.ident.NewID()),
			Player1ID: shuffled[i+2].ID,
			Player2ID: shuffled[i+3].ID,
		}

		matches = append(matches, model.Match{
			ID:        model.MatchID(g.ident.NewID()),
			Team1:     team1,
			Team2:     team2,
			CreatedAt: g.clock.Now(),
		})
	}
	return matches
}

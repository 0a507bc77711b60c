package balance

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Team represents one side of a generated match.
type Team struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Players       []Player `json:"players"`
	AverageRating int      `json:"averageRating"`
}

// String returns the team members separated by commas.
func (t Team) String() string {
	names := make([]string, len(t.Players))
	for i, p := range t.Players {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

// Has reports whether the player with the given id is a member of the team.
func (t Team) Has(id string) bool {
	return slices.ContainsFunc(t.Players, func(p Player) bool { return p.ID == id })
}

// Match is a pair of teams, the first one being team A.
type Match [2]Team

// String returns the string representation of the match in format
// of "<team1> vs <team2>".
func (m Match) String() string {
	return fmt.Sprintf("%s vs %s", m[0], m[1])
}

// Average returns the rounded mean overall of the players, 0 for none.
func Average(players []Player) int {
	if len(players) == 0 {
		return 0
	}

	sum := 0
	for _, p := range players {
		sum += p.Overall
	}
	return int(math.Round(float64(sum) / float64(len(players))))
}

// groupByPosition groups players by position keeping their relative order.
func groupByPosition(players []Player) map[Position][]Player {
	groups := make(map[Position][]Player, len(Positions))
	for _, p := range players {
		groups[p.Position] = append(groups[p.Position], p)
	}
	return groups
}

// lineup accumulates players of a team under construction.
type lineup struct {
	players []Player
	size    int // capacity, 0 means unbounded
}

func newLineup(size int) *lineup {
	return &lineup{players: make([]Player, 0, size+1), size: size}
}

func (l *lineup) add(p Player) { l.players = append(l.players, p) }

func (l *lineup) len() int { return len(l.players) }

func (l *lineup) full() bool { return l.size > 0 && len(l.players) >= l.size }

func (l *lineup) average() int { return Average(l.players) }

func (l *lineup) has(id string) bool {
	return slices.ContainsFunc(l.players, func(p Player) bool { return p.ID == id })
}

// with returns a copy of the lineup players with p appended.
func (l *lineup) with(p Player) []Player {
	res := make([]Player, len(l.players), len(l.players)+1)
	copy(res, l.players)
	return append(res, p)
}

// team snapshots the lineup into a Team.
func (l *lineup) team(id, name string) Team {
	return Team{
		ID:            id,
		Name:          name,
		Players:       slices.Clone(l.players),
		AverageRating: l.average(),
	}
}

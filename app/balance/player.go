package balance

import (
	"fmt"
	"math"
	"strings"
)

// Position is a field position of a player.
type Position string

// Supported positions.
const (
	GK  Position = "GK"
	DEF Position = "DEF"
	MID Position = "MID"
	ATT Position = "ATT"
)

// Positions lists positions in the order they are distributed by the position strategy.
var Positions = []Position{GK, DEF, MID, ATT}

// ParsePosition parses a position, case-insensitive.
func ParsePosition(s string) (Position, error) {
	for _, p := range Positions {
		if strings.EqualFold(string(p), strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown position %q", s)
}

// Attributes are the sub-ratings a player's overall is derived from.
type Attributes struct {
	Pace      int `json:"pace"`
	Shooting  int `json:"shooting"`
	Passing   int `json:"passing"`
	Dribbling int `json:"dribbling"`
	Defending int `json:"defending"`
	Physical  int `json:"physical"`
}

// Player represents a rated football player.
type Player struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Position   Position   `json:"position"`
	Overall    int        `json:"overall"`
	Attributes Attributes `json:"attributes"`

	Club        string `json:"club,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Age         int    `json:"age,omitempty"`
	Photo       string `json:"photo,omitempty"`
}

// String returns the player name followed by the overall rating.
func (p Player) String() string {
	return fmt.Sprintf("%s (%d)", p.Name, p.Overall)
}

type attributeWeights struct {
	pace, shooting, passing, dribbling, defending, physical float64
}

var overallWeights = map[Position]attributeWeights{
	GK:  {pace: 0.1, shooting: 0.1, passing: 0.2, dribbling: 0.1, defending: 0.3, physical: 0.2},
	DEF: {pace: 0.15, shooting: 0.05, passing: 0.2, dribbling: 0.1, defending: 0.35, physical: 0.15},
	MID: {pace: 0.15, shooting: 0.2, passing: 0.3, dribbling: 0.2, defending: 0.1, physical: 0.05},
	ATT: {pace: 0.2, shooting: 0.35, passing: 0.15, dribbling: 0.25, defending: 0.02, physical: 0.03},
}

// CalculateOverall derives the overall rating from the attributes using
// position-specific weights. Unknown positions yield 0.
func CalculateOverall(a Attributes, pos Position) int {
	w, ok := overallWeights[pos]
	if !ok {
		return 0
	}

	return int(math.Round(float64(a.Pace)*w.pace +
		float64(a.Shooting)*w.shooting +
		float64(a.Passing)*w.passing +
		float64(a.Dribbling)*w.dribbling +
		float64(a.Defending)*w.defending +
		float64(a.Physical)*w.physical))
}

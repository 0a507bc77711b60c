package balance

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// DraftTeamSize is the size of each team built by Draft.
const DraftTeamSize = 7

// Team identities of drafted matches.
const (
	DraftTeamAID = "team-1"
	DraftTeamBID = "team-2"
)

// ErrSameCaptain is returned when both captains are the same player.
var ErrSameCaptain = errors.New("captains must be different players")

// Draft lets the two captains pick players in turns, starting with the first
// captain. On each turn the acting captain takes the player that scores best
// against the own team's average. The input slice is never modified.
func (b *Balancer) Draft(players []Player, captains [2]Player) (Match, error) {
	if captains[0].ID == captains[1].ID {
		return Match{}, ErrSameCaptain
	}

	available := make([]Player, 0, len(players))
	for _, p := range players {
		if p.ID != captains[0].ID && p.ID != captains[1].ID {
			available = append(available, p)
		}
	}

	teams := [2]*lineup{newLineup(DraftTeamSize), newLineup(DraftTeamSize)}
	teams[0].add(captains[0])
	teams[1].add(captains[1])

	for turn := 0; len(available) > 0 && (!teams[0].full() || !teams[1].full()); turn = 1 - turn {
		current := teams[turn]
		avg := current.average()

		slices.SortStableFunc(available, func(x, y Player) int {
			return cmp.Compare(b.scoring.score(current.with(y), avg), b.scoring.score(current.with(x), avg))
		})

		chosen := available[0]
		available = available[1:]

		if !current.full() {
			current.add(chosen)
		}
	}

	return Match{
		teams[0].team(DraftTeamAID, fmt.Sprintf("Time do %s", captains[0].Name)),
		teams[1].team(DraftTeamBID, fmt.Sprintf("Time do %s", captains[1].Name)),
	}, nil
}

package balance

import "math"

// Scoring holds the weights of the balance score.
type Scoring struct {
	Base            float64              // score of a perfectly even pick
	PositionBonus   float64              // max bonus per position
	PositionPenalty float64              // bonus lost per player off the ideal count
	Ideal           map[Position]float64 // ideal count of players per position
}

// DefaultScoring is the scoring used unless overridden with WithScoring.
var DefaultScoring = Scoring{
	Base:            100,
	PositionBonus:   10,
	PositionPenalty: 3,
	Ideal:           map[Position]float64{GK: 1, DEF: 2.5, MID: 2.5, ATT: 1.5},
}

// Score rates how well the candidate fits the team: the closer the team
// average ends up to the opponent's average and the closer the team
// composition gets to the ideal, the higher the score.
func (s Scoring) Score(team []Player, candidate Player, opponentAvg int) float64 {
	next := make([]Player, len(team), len(team)+1)
	copy(next, team)
	next = append(next, candidate)
	return s.score(next, opponentAvg)
}

func (s Scoring) score(next []Player, opponentAvg int) float64 {
	diff := math.Abs(float64(Average(next) - opponentAvg))
	return s.Base - diff + s.PositionBalance(next)
}

// PositionBalance sums per-position bonuses for how close the team's
// position counts are to the ideal distribution.
func (s Scoring) PositionBalance(players []Player) float64 {
	groups := groupByPosition(players)

	balance := 0.0
	for _, pos := range Positions {
		actual := float64(len(groups[pos]))
		balance += math.Max(0, s.PositionBonus-math.Abs(actual-s.Ideal[pos])*s.PositionPenalty)
	}
	return balance
}

// Package balance splits a roster of rated players into two even teams.
package balance

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
)

// Strategy defines how the players are distributed among the teams.
type Strategy string

// Supported strategies.
const (
	StrategyOverall  Strategy = "overall"  // serpentine over players sorted by overall
	StrategyPosition Strategy = "position" // alternate within each position group
	StrategyMixed    Strategy = "mixed"    // greedy on the balance score
)

// ParseStrategy parses the strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(s); st {
	case StrategyOverall, StrategyPosition, StrategyMixed:
		return st, nil
	default:
		return "", fmt.Errorf("unknown strategy %q", s)
	}
}

// Options are the team generation options.
type Options struct {
	PlayersPerTeam int
	Strategy       Strategy
	// EnforcePositions is accepted for compatibility with existing callers,
	// no strategy consults it.
	EnforcePositions bool
}

// DefaultOptions are used for zero fields of Options.
var DefaultOptions = Options{PlayersPerTeam: 7, Strategy: StrategyOverall}

func (o Options) withDefaults() Options {
	if o.PlayersPerTeam <= 0 {
		o.PlayersPerTeam = DefaultOptions.PlayersPerTeam
	}
	if o.Strategy == "" {
		o.Strategy = DefaultOptions.Strategy
	}
	return o
}

// ErrNotEnoughPlayers is returned when the roster is too small for the requested format.
type ErrNotEnoughPlayers struct {
	Required  int
	Available int
}

// Error returns the error message.
func (e ErrNotEnoughPlayers) Error() string {
	return fmt.Sprintf("not enough players, required: %d, available: %d", e.Required, e.Available)
}

// Team identities of generated matches.
const (
	TeamAID   = "team-a"
	TeamAName = "Time Branco"
	TeamBID   = "team-b"
	TeamBName = "Time Preto"
)

const (
	serpentineCycle = 4 // picks per serpentine round, first half goes to team A
	oddRosterSize   = 15
	oddRosterPlaced = 14 // players placed before the 15th is handed out
)

// Source is a source of random integers in [0, n).
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Balancer generates balanced teams. It is safe for concurrent use.
type Balancer struct {
	scoring Scoring
	source  func() Source
}

// Option configures the Balancer.
type Option func(*Balancer)

// WithSeed makes every invocation shuffle with a fresh generator seeded with seed.
func WithSeed(seed uint64) Option {
	return func(b *Balancer) {
		b.source = func() Source { return rand.New(rand.NewPCG(seed, seed)) }
	}
}

// WithSource sets the factory of random sources, called once per invocation.
func WithSource(fn func() Source) Option {
	return func(b *Balancer) { b.source = fn }
}

// WithScoring overrides the balance score weights.
func WithScoring(s Scoring) Option {
	return func(b *Balancer) { b.scoring = s }
}

// New makes a new Balancer.
func New(opts ...Option) *Balancer {
	b := &Balancer{
		scoring: DefaultScoring,
		source:  func() Source { return globalSource{} },
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var defaultBalancer = New()

// Generate splits the players into two teams with the default balancer.
func Generate(players []Player, opts Options) (Match, error) {
	return defaultBalancer.Generate(players, opts)
}

// Draft simulates a captains draft with the default balancer.
func Draft(players []Player, captains [2]Player) (Match, error) {
	return defaultBalancer.Draft(players, captains)
}

// Generate splits the players into two teams according to the options.
// The input slice is never modified.
func (b *Balancer) Generate(players []Player, opts Options) (Match, error) {
	opts = opts.withDefaults()
	size := opts.PlayersPerTeam

	if len(players) < size*2 {
		return Match{}, ErrNotEnoughPlayers{Required: size * 2, Available: len(players)}
	}

	var goalkeepers []Player
	for _, p := range players {
		if p.Position == GK {
			goalkeepers = append(goalkeepers, p)
		}
	}

	ta, tb := newLineup(size), newLineup(size)

	// goalkeepers removed from the pool, either placed or held back for the tie-break
	var reserved, heldBack []Player
	switch {
	case len(goalkeepers) == 2:
		ta.add(goalkeepers[0])
		tb.add(goalkeepers[1])
		reserved = goalkeepers
	case len(goalkeepers) == 1 && len(players) != oddRosterSize:
		ta.add(goalkeepers[0])
		reserved = goalkeepers
	case len(goalkeepers) == 1:
		heldBack = goalkeepers
		reserved = goalkeepers
	}

	pool := make([]Player, 0, len(players))
	for _, p := range players {
		if !slices.ContainsFunc(reserved, func(r Player) bool { return r.ID == p.ID }) {
			pool = append(pool, p)
		}
	}
	shuffle(pool, b.source())

	switch opts.Strategy {
	case StrategyOverall:
		distributeByOverall(pool, ta, tb)
	case StrategyPosition:
		distributeByPosition(pool, ta, tb)
	default:
		b.distributeMixed(pool, ta, tb)
	}

	if len(players) == oddRosterSize {
		for _, gk := range heldBack {
			smaller(ta, tb).add(gk)
		}

		if ta.len()+tb.len() == oddRosterPlaced {
			for _, p := range players {
				if ta.has(p.ID) || tb.has(p.ID) {
					continue
				}
				weaker(ta, tb).add(p)
				break
			}
		}
	}

	return Match{ta.team(TeamAID, TeamAName), tb.team(TeamBID, TeamBName)}, nil
}

// shuffle permutes the players in place with Fisher-Yates.
func shuffle(players []Player, src Source) {
	for i := len(players) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		players[i], players[j] = players[j], players[i]
	}
}

// distributeByOverall sorts the pool by overall and hands out players in
// pairs, alternating teams every two picks.
func distributeByOverall(pool []Player, a, b *lineup) {
	slices.SortStableFunc(pool, func(x, y Player) int { return cmp.Compare(y.Overall, x.Overall) })

	n := min(len(pool), a.size+b.size-a.len()-b.len())
	for i := 0; i < n; i++ {
		first, second := a, b
		if i%serpentineCycle >= serpentineCycle/2 {
			first, second = b, a
		}

		if !first.full() {
			first.add(pool[i])
			continue
		}
		second.add(pool[i])
	}
}

// distributeByPosition alternates players of each position group among the
// teams, falling back to whichever team has room.
func distributeByPosition(pool []Player, a, b *lineup) {
	groups := groupByPosition(pool)

	for _, pos := range Positions {
		for i, p := range groups[pos] {
			if a.full() && b.full() {
				return
			}

			switch {
			case i%2 == 0 && !a.full():
				a.add(p)
			case !b.full():
				b.add(p)
			default:
				a.add(p)
			}
		}
	}
}

// distributeMixed greedily picks the player that keeps the teams closest
// in average and position mix until both teams are full.
func (b *Balancer) distributeMixed(pool []Player, ta, tb *lineup) {
	available := slices.Clone(pool)

	for (!ta.full() || !tb.full()) && len(available) > 0 {
		avgA, avgB := ta.average(), tb.average()

		best, bestScore := 0, 0.0
		for i, p := range available {
			score := max(
				b.scoring.score(ta.with(p), avgB),
				b.scoring.score(tb.with(p), avgA),
			)
			if i == 0 || score > bestScore {
				best, bestScore = i, score
			}
		}

		selected := available[best]
		available = slices.Delete(available, best, best+1)

		switch {
		case ta.full():
			tb.add(selected)
		case tb.full():
			ta.add(selected)
		case ta.len() < tb.len():
			ta.add(selected)
		case tb.len() < ta.len():
			tb.add(selected)
		case avgA <= avgB:
			ta.add(selected)
		default:
			tb.add(selected)
		}
	}
}

// smaller returns the team with fewer players, a on ties.
func smaller(a, b *lineup) *lineup {
	if b.len() < a.len() {
		return b
	}
	return a
}

// weaker returns the team with the lower average, a on ties.
func weaker(a, b *lineup) *lineup {
	if b.average() < a.average() {
		return b
	}
	return a
}

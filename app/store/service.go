package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/bobylevd/pelada-bot/app/balance"
)

// Service wraps the database store with additional methods.
type Service struct {
	Store    *Store
	Balancer *balance.Balancer // default balancer if nil
}

// ErrNoCaptain is returned when a captain name is blank.
var ErrNoCaptain = errors.New("captain name is required")

// ErrMissing indicates that certain players were not found in the roster and
// are required to be registered.
type ErrMissing []string

// Error returns the error message.
func (e ErrMissing) Error() string {
	return fmt.Sprintf("missing players are required to register: %s",
		strings.Join(e, ", "))
}

// SelectTeamsRequest is a request to select two teams.
type SelectTeamsRequest struct {
	Names   []string
	Options balance.Options
}

// DraftRequest is a request to draft two teams by the captains.
type DraftRequest struct {
	Captains [2]string
	Names    []string
}

// SelectTeams selects two teams from the named players.
func (s *Service) SelectTeams(ctx context.Context, req SelectTeamsRequest) (balance.Match, error) {
	players, err := s.Resolve(ctx, req.Names)
	if err != nil {
		return balance.Match{}, err
	}

	m, err := s.balancer().Generate(players, req.Options)
	if err != nil {
		return balance.Match{}, fmt.Errorf("generate teams: %w", err)
	}

	log.Printf("[DEBUG] generated teams with %q strategy: %s", req.Options.Strategy, m)
	return m, nil
}

// Draft lets the captains draft two teams from the named players.
func (s *Service) Draft(ctx context.Context, req DraftRequest) (balance.Match, error) {
	first, second := strings.TrimSpace(req.Captains[0]), strings.TrimSpace(req.Captains[1])
	if first == "" || second == "" {
		return balance.Match{}, ErrNoCaptain
	}
	if strings.EqualFold(first, second) {
		return balance.Match{}, balance.ErrSameCaptain
	}

	captains, err := s.Resolve(ctx, []string{first, second})
	if err != nil {
		return balance.Match{}, err
	}

	players, err := s.Resolve(ctx, req.Names)
	if err != nil {
		return balance.Match{}, err
	}

	// captains are dropped from the pool by id, repeating them in Names is harmless
	m, err := s.balancer().Draft(append(captains, players...), [2]balance.Player{captains[0], captains[1]})
	if err != nil {
		return balance.Match{}, fmt.Errorf("draft teams: %w", err)
	}

	log.Printf("[DEBUG] drafted teams: %s", m)
	return m, nil
}

// Resolve returns the players with the given names in the requested order,
// duplicates are dropped.
func (s *Service) Resolve(ctx context.Context, names []string) ([]balance.Player, error) {
	names = s.dedupe(names)
	if len(names) == 0 {
		return nil, nil
	}

	stored, err := s.Store.ListByNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	var (
		players []balance.Player
		missing ErrMissing
	)
	for _, name := range names {
		pl, ok := s.find(stored, name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		players = append(players, pl.Balance())
	}

	if len(missing) > 0 {
		return nil, missing
	}
	return players, nil
}

// Register adds the player to the roster or updates the one with the same name.
// Missing id is generated, missing overall is derived from the attributes.
// On update the fields left empty keep their stored values.
func (s *Service) Register(ctx context.Context, p balance.Player) (balance.Player, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return balance.Player{}, errors.New("player name is required")
	}

	pos, err := balance.ParsePosition(string(p.Position))
	if err != nil {
		return balance.Player{}, err
	}
	p.Position = pos

	existing, err := s.Store.Get(ctx, p.Name)
	switch {
	case errors.Is(err, ErrNotFound):
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.Overall == 0 {
			p.Overall = balance.CalculateOverall(p.Attributes, p.Position)
		}
		if err := s.Store.Create(ctx, FromBalance(p)); err != nil {
			return balance.Player{}, fmt.Errorf("create player: %w", err)
		}
		return p, nil
	case err != nil:
		return balance.Player{}, fmt.Errorf("get player: %w", err)
	}

	p = s.merge(existing.Balance(), p)
	if p.Overall == 0 {
		p.Overall = balance.CalculateOverall(p.Attributes, p.Position)
	}
	if err := s.Store.Update(ctx, FromBalance(p)); err != nil {
		return balance.Player{}, fmt.Errorf("update player: %w", err)
	}
	return p, nil
}

// merge fills the zero fields of the update with the stored player.
// The stored overall is kept only if neither overall nor attributes are set.
func (s *Service) merge(stored, upd balance.Player) balance.Player {
	upd.ID = stored.ID

	if upd.Attributes == (balance.Attributes{}) {
		upd.Attributes = stored.Attributes
		if upd.Overall == 0 {
			upd.Overall = stored.Overall
		}
	}
	if upd.Club == "" {
		upd.Club = stored.Club
	}
	if upd.Nationality == "" {
		upd.Nationality = stored.Nationality
	}
	if upd.Age == 0 {
		upd.Age = stored.Age
	}
	if upd.Photo == "" {
		upd.Photo = stored.Photo
	}
	return upd
}

// Remove removes the player from the roster.
func (s *Service) Remove(ctx context.Context, name string) error {
	if err := s.Store.Delete(ctx, name); err != nil {
		return fmt.Errorf("remove player %s: %w", name, err)
	}
	return nil
}

// List returns the whole roster.
func (s *Service) List(ctx context.Context) ([]balance.Player, error) {
	stored, err := s.Store.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	players := make([]balance.Player, len(stored))
	for i, pl := range stored {
		players[i] = pl.Balance()
	}
	return players, nil
}

func (s *Service) balancer() *balance.Balancer {
	if s.Balancer == nil {
		return balance.New()
	}
	return s.Balancer
}

// find looks up the player by name, case-insensitive.
func (s *Service) find(players []Player, name string) (Player, bool) {
	for _, pl := range players {
		if strings.EqualFold(pl.Name, name) {
			return pl, true
		}
	}
	return Player{}, false
}

// dedupe drops repeated names, case-insensitive, keeping the first occurrence.
func (s *Service) dedupe(names []string) []string {
	var res []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || s.contains(res, name) {
			continue
		}
		res = append(res, name)
	}
	return res
}

// contains checks whether the slice contains the specified string,
// case-insensitive.
func (s *Service) contains(strs []string, str string) bool {
	for _, s := range strs {
		if strings.EqualFold(s, str) {
			return true
		}
	}
	return false
}

package store

import (
	"github.com/gobuffalo/nulls"

	"github.com/bobylevd/pelada-bot/app/balance"
)

// Player is a roster entry as stored in the database.
type Player struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Position string `db:"position"`
	Overall  int    `db:"overall"`
	Attributes

	Club        nulls.String `db:"club"`
	Nationality nulls.String `db:"nationality"`
	Age         nulls.Int    `db:"age"`
	Photo       nulls.String `db:"photo"`
}

// Attributes are the stored sub-ratings of a player.
type Attributes struct {
	Pace      int `db:"pace"`
	Shooting  int `db:"shooting"`
	Passing   int `db:"passing"`
	Dribbling int `db:"dribbling"`
	Defending int `db:"defending"`
	Physical  int `db:"physical"`
}

// FromBalance converts the balancer player into a roster entry.
func FromBalance(p balance.Player) Player {
	pl := Player{
		ID:         p.ID,
		Name:       p.Name,
		Position:   string(p.Position),
		Overall:    p.Overall,
		Attributes: Attributes(p.Attributes),
	}
	if p.Club != "" {
		pl.Club = nulls.NewString(p.Club)
	}
	if p.Nationality != "" {
		pl.Nationality = nulls.NewString(p.Nationality)
	}
	if p.Age > 0 {
		pl.Age = nulls.NewInt(p.Age)
	}
	if p.Photo != "" {
		pl.Photo = nulls.NewString(p.Photo)
	}
	return pl
}

// Balance converts the roster entry into the balancer player.
func (p Player) Balance() balance.Player {
	return balance.Player{
		ID:          p.ID,
		Name:        p.Name,
		Position:    balance.Position(p.Position),
		Overall:     p.Overall,
		Attributes:  balance.Attributes(p.Attributes),
		Club:        p.Club.String,
		Nationality: p.Nationality.String,
		Age:         p.Age.Int,
		Photo:       p.Photo.String,
	}
}

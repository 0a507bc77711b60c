package cmd

import (
	"fmt"

	"github.com/bobylevd/pelada-bot/app/balance"
	"github.com/bobylevd/pelada-bot/app/store"
)

// CommonOpts contains information that is common for all commands.
type CommonOpts struct {
	Version string
}

// Set sets the common options.
func (c *CommonOpts) Set(cc CommonOpts) {
	c.Version = cc.Version
}

// StoreOpts locate the roster database.
type StoreOpts struct {
	StoreLocation string `long:"loc" env:"LOCATION" default:"roster.db" description:"Store location"`
}

// BalanceOpts configure the team generation.
type BalanceOpts struct {
	Strategy       string `long:"strategy" env:"STRATEGY" default:"overall" choice:"overall" choice:"position" choice:"mixed" description:"balance strategy"`
	PlayersPerTeam int    `long:"per-team" env:"PER_TEAM" default:"7" description:"players per team"`
	Seed           uint64 `long:"seed"     env:"SEED"                    description:"shuffle seed, random if not set"`
}

// Options returns the balancer options.
func (o BalanceOpts) Options() (balance.Options, error) {
	st, err := balance.ParseStrategy(o.Strategy)
	if err != nil {
		return balance.Options{}, err
	}
	if o.PlayersPerTeam < 1 {
		return balance.Options{}, fmt.Errorf("players per team must be positive, got %d", o.PlayersPerTeam)
	}
	return balance.Options{PlayersPerTeam: o.PlayersPerTeam, Strategy: st}, nil
}

// Balancer returns the balancer, seeded if the seed is set.
func (o BalanceOpts) Balancer() *balance.Balancer {
	if o.Seed != 0 {
		return balance.New(balance.WithSeed(o.Seed))
	}
	return balance.New()
}

func openService(loc string, b *balance.Balancer) (*store.Service, error) {
	s, err := store.New(loc)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	return &store.Service{Store: s, Balancer: b}, nil
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bobylevd/pelada-bot/app/balance"
	"github.com/bobylevd/pelada-bot/app/export"
	"github.com/bobylevd/pelada-bot/app/store"
)

// Teams is a command to split the named players into two teams.
type Teams struct {
	CommonOpts
	StoreOpts
	BalanceOpts
	Format string `long:"format" default:"text" choice:"text" choice:"table" description:"output format"`

	out io.Writer
}

// Execute runs the command.
func (t *Teams) Execute(names []string) error {
	opts, err := t.Options()
	if err != nil {
		return err
	}

	svc, err := openService(t.StoreLocation, t.Balancer())
	if err != nil {
		return err
	}
	defer svc.Store.Close()

	m, err := svc.SelectTeams(context.Background(), store.SelectTeamsRequest{Names: names, Options: opts})
	if err != nil {
		return fmt.Errorf("select teams: %w", err)
	}

	return write(t.out, t.Format, m)
}

// Draft is a command to let two captains pick the teams.
type Draft struct {
	CommonOpts
	StoreOpts
	Captains []string `long:"captain" required:"true" description:"team captain, exactly two"`
	Format   string   `long:"format" default:"text" choice:"text" choice:"table" description:"output format"`

	out io.Writer
}

// Execute runs the command.
func (d *Draft) Execute(names []string) error {
	if len(d.Captains) != 2 {
		return fmt.Errorf("exactly two captains required, got %d", len(d.Captains))
	}

	svc, err := openService(d.StoreLocation, nil)
	if err != nil {
		return err
	}
	defer svc.Store.Close()

	m, err := svc.Draft(context.Background(), store.DraftRequest{
		Captains: [2]string{d.Captains[0], d.Captains[1]},
		Names:    names,
	})
	if err != nil {
		return fmt.Errorf("draft teams: %w", err)
	}

	return write(d.out, d.Format, m)
}

func write(w io.Writer, format string, m balance.Match) error {
	if w == nil {
		w = os.Stdout
	}

	out := export.Text(m)
	if format == "table" {
		out = export.Table(m) + "\n"
	}

	_, err := io.WriteString(w, out)
	return err
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bobylevd/pelada-bot/app/balance"
	"github.com/bobylevd/pelada-bot/app/export"
)

// Roster is a command to print the registered players.
type Roster struct {
	CommonOpts
	StoreOpts

	out io.Writer
}

// Execute runs the command.
func (r *Roster) Execute([]string) error {
	svc, err := openService(r.StoreLocation, nil)
	if err != nil {
		return err
	}
	defer svc.Store.Close()

	players, err := svc.List(context.Background())
	if err != nil {
		return err
	}

	w := r.out
	if w == nil {
		w = os.Stdout
	}
	_, err = fmt.Fprintln(w, export.Roster(players))
	return err
}

// Import is a command to load players from a JSON file into the roster.
type Import struct {
	CommonOpts
	StoreOpts
	Args struct {
		File string `positional-arg-name:"FILE" description:"JSON array of players"`
	} `positional-args:"yes" required:"yes"`
}

// Execute runs the command.
func (im *Import) Execute([]string) error {
	f, err := os.Open(im.Args.File)
	if err != nil {
		return fmt.Errorf("open roster file: %w", err)
	}
	defer f.Close()

	var players []balance.Player
	if err := json.NewDecoder(f).Decode(&players); err != nil {
		return fmt.Errorf("parse roster file: %w", err)
	}

	svc, err := openService(im.StoreLocation, nil)
	if err != nil {
		return err
	}
	defer svc.Store.Close()

	imported := 0
	for _, p := range players {
		pl, err := svc.Register(context.Background(), p)
		if err != nil {
			log.Printf("[WARN] skipping player %q: %v", p.Name, err)
			continue
		}
		log.Printf("[DEBUG] imported %s, %s", pl, pl.Position)
		imported++
	}

	log.Printf("[INFO] imported %d of %d players from %s", imported, len(players), im.Args.File)
	return nil
}

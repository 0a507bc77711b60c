package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/bobylevd/pelada-bot/app/event"
)

// Bot is a command to run discord bot.
type Bot struct {
	CommonOpts
	StoreOpts
	BalanceOpts
	Token    string   `long:"token"    env:"TOKEN"     description:"Discord bot token" required:"true"`
	AdminIDs []string `long:"admin-id" env:"ADMIN_IDS" env-delim:"," description:"Admin discords IDs"`
}

// Execute runs the command.
func (b *Bot) Execute([]string) error {
	defaults, err := b.Options()
	if err != nil {
		return err
	}

	svc, err := openService(b.StoreLocation, b.Balancer())
	if err != nil {
		return err
	}
	defer svc.Store.Close()

	disc := &event.Discord{
		Token:    b.Token,
		AdminIDs: b.AdminIDs,
		Service:  svc,
		Defaults: defaults,
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	go func() { // catch signal and invoke graceful termination
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		sig := <-stop
		log.Printf("[WARN] caught signal: %s", sig)
		cancel(fmt.Errorf("caught signal: %s", sig))
	}()

	ewg, ctx := errgroup.WithContext(ctx)
	ewg.Go(func() error {
		log.Printf("[INFO] starting bot, version %s", b.Version)
		return disc.Run(ctx)
	})
	ewg.Go(func() error {
		<-ctx.Done()
		log.Printf("[INFO] stopping bot")
		return nil
	})

	if err := ewg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

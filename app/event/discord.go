package event

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/bobylevd/pelada-bot/app/balance"
	"github.com/bobylevd/pelada-bot/app/export"
	"github.com/bobylevd/pelada-bot/app/store"
)

// Discord is a handler for Discord commands.
type Discord struct {
	Token          string
	AdminIDs       []string
	Service        *store.Service
	Defaults       balance.Options
	HandlerTimeout time.Duration
	se             *discordgo.Session
}

// Run runs the Discord handler.
// Blocking call.
func (d *Discord) Run(ctx context.Context) error {
	if d.HandlerTimeout == 0 {
		d.HandlerTimeout = 5 * time.Second
	}

	se, err := discordgo.New(fmt.Sprintf("Bot %s", d.Token))
	if err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	d.se = se
	d.se.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent
	d.se.AddHandler(d.onMessage)

	log.Printf("[INFO] opening discord session")
	if err := d.se.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	<-ctx.Done()

	log.Printf("[WARN] stopping bot with reason: %v", context.Cause(ctx))
	if err := d.se.Close(); err != nil {
		return fmt.Errorf("close discord session: %w", err)
	}

	return nil
}

type command func(ctx context.Context, args []string) (reply string, err error)

func (d *Discord) onMessage(s *discordgo.Session, msg *discordgo.MessageCreate) {
	if msg.Author.ID == s.State.User.ID {
		return // ignore messages from the bot
	}

	log.Printf("[DEBUG] received message from %s: %s", msg.ChannelID, msg.Content)

	reply, ok := d.handle(msg.Author.ID, msg.Content)
	if !ok {
		return
	}

	replyTo := &discordgo.MessageReference{MessageID: msg.ID, ChannelID: msg.ChannelID}
	if _, err := s.ChannelMessageSendReply(msg.ChannelID, reply, replyTo); err != nil {
		log.Printf("[WARN] failed to send message: %v", err)
	}
}

// handle routes the message to the command and returns the reply,
// ok is false if the message is not a command.
func (d *Discord) handle(authorID, content string) (reply string, ok bool) {
	content = strings.TrimSpace(content)
	if content == "" || !strings.HasPrefix(content, "!") {
		return "", false // do nothing
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.HandlerTimeout)
	defer cancel()

	var cmd command
	fields := strings.Fields(content)
	args := fields[1:] // first word is the command itself

	switch name := fields[0]; {
	case name == "!teams":
		cmd = d.teams
	case name == "!draft":
		cmd = d.draft
	case name == "!roster":
		cmd = d.roster
	case name == "!addplayer" && d.isAdmin(authorID):
		cmd = d.addPlayer
	case name == "!remove" && d.isAdmin(authorID):
		cmd = d.remove
	case name == "!ping":
		cmd = d.ping
	case name == "!help":
		cmd = d.help
	default:
		return "", false
	}

	reply, err := cmd(ctx, args)
	if err != nil {
		log.Printf("[WARN] failed to execute command %s: %v", fields[0], err)
		reply = "failed to execute command, check logs"
	}
	return reply, true
}

func (d *Discord) teams(ctx context.Context, args []string) (string, error) {
	req, err := parseTeamsArgs(args, d.Defaults)
	if err != nil {
		return err.Error(), nil
	}

	m, err := d.Service.SelectTeams(ctx, req)
	if reply, ok := userError(err); ok {
		return reply, nil
	}
	if err != nil {
		return "", fmt.Errorf("select teams: %w", err)
	}

	return export.Text(m), nil
}

func (d *Discord) draft(ctx context.Context, args []string) (string, error) {
	if len(args) < 2 {
		return "usage: !draft <captain1> <captain2> [player ...]", nil
	}

	m, err := d.Service.Draft(ctx, store.DraftRequest{
		Captains: [2]string{args[0], args[1]},
		Names:    args[2:],
	})
	if reply, ok := userError(err); ok {
		return reply, nil
	}
	if err != nil {
		return "", fmt.Errorf("draft teams: %w", err)
	}

	return export.Text(m), nil
}

func (d *Discord) roster(ctx context.Context, _ []string) (string, error) {
	players, err := d.Service.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list players: %w", err)
	}
	if len(players) == 0 {
		return "roster is empty", nil
	}

	return "```\n" + export.Roster(players) + "\n```", nil
}

func (d *Discord) addPlayer(ctx context.Context, args []string) (string, error) {
	if len(args) != 3 {
		return "usage: !addplayer <name> <GK|DEF|MID|ATT> <overall>", nil
	}

	pos, err := balance.ParsePosition(args[1])
	if err != nil {
		return err.Error(), nil
	}

	overall, err := strconv.Atoi(args[2])
	if err != nil || overall < 1 || overall > 99 {
		return "overall must be a number between 1 and 99", nil
	}

	pl, err := d.Service.Register(ctx, balance.Player{Name: args[0], Position: pos, Overall: overall})
	if err != nil {
		return "", fmt.Errorf("register player: %w", err)
	}

	return fmt.Sprintf("player registered: %s", pl), nil
}

func (d *Discord) remove(ctx context.Context, args []string) (string, error) {
	if len(args) != 1 {
		return "usage: !remove <name>", nil
	}

	if err := d.Service.Remove(ctx, args[0]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "player not found", nil
		}
		return "", fmt.Errorf("remove player: %w", err)
	}

	return "player removed", nil
}

func (d *Discord) isAdmin(discordID string) bool {
	for _, id := range d.AdminIDs {
		if discordID == id {
			return true
		}
	}
	return false
}

func (d *Discord) ping(context.Context, []string) (string, error) { return "pong!", nil }

func (d *Discord) help(context.Context, []string) (reply string, err error) {
	return `
!teams [overall|position|mixed] [players per team] <player ...> - sorteio dos times
!draft <captain1> <captain2> [player ...] - escolha alternada pelos capitães
!roster - lista de jogadores
!addplayer <name> <GK|DEF|MID|ATT> <overall> - só para admins, cadastra ou atualiza jogador
!remove <name> - só para admins, remove jogador
!ping - pong!
!help - esta mensagem
	`, nil
}

// parseTeamsArgs parses "[strategy] [players per team] name...".
func parseTeamsArgs(args []string, defaults balance.Options) (store.SelectTeamsRequest, error) {
	req := store.SelectTeamsRequest{Options: defaults}

	if len(args) > 0 {
		if st, err := balance.ParseStrategy(strings.ToLower(args[0])); err == nil {
			req.Options.Strategy = st
			args = args[1:]
		}
	}

	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			if n < 1 {
				return store.SelectTeamsRequest{}, fmt.Errorf("players per team must be positive, got %d", n)
			}
			req.Options.PlayersPerTeam = n
			args = args[1:]
		}
	}

	if len(args) == 0 {
		return store.SelectTeamsRequest{}, errors.New("usage: !teams [overall|position|mixed] [players per team] <player ...>")
	}

	req.Names = args
	return req, nil
}

// userError converts errors caused by the request into replies.
func userError(err error) (string, bool) {
	var notEnough balance.ErrNotEnoughPlayers
	if errors.As(err, &notEnough) {
		return fmt.Sprintf("not enough players: %d required, %d available", notEnough.Required, notEnough.Available), true
	}

	var missing store.ErrMissing
	if errors.As(err, &missing) {
		return missing.Error(), true
	}

	if errors.Is(err, balance.ErrSameCaptain) {
		return "captains must be different players", true
	}

	if errors.Is(err, store.ErrNoCaptain) {
		return "captain name is required", true
	}

	return "", false
}

package event

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobylevd/pelada-bot/app/balance"
	"github.com/bobylevd/pelada-bot/app/store"
)

func newTestDiscord(t *testing.T, players int) (*Discord, []string) {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "roster.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	svc := &store.Service{Store: st, Balancer: balance.New(balance.WithSeed(1))}
	names := make([]string, players)
	for i := range names {
		names[i] = fmt.Sprintf("p%02d", i)
		_, err := svc.Register(context.Background(), balance.Player{Name: names[i], Position: balance.MID, Overall: 70 + i})
		require.NoError(t, err)
	}

	return &Discord{
		AdminIDs:       []string{"admin"},
		Service:        svc,
		Defaults:       balance.DefaultOptions,
		HandlerTimeout: time.Second,
	}, names
}

func TestParseTeamsArgs(t *testing.T) {
	tbl := []struct {
		args    []string
		want    store.SelectTeamsRequest
		wantErr bool
	}{
		{
			args: []string{"a", "b"},
			want: store.SelectTeamsRequest{Names: []string{"a", "b"}, Options: balance.DefaultOptions},
		},
		{
			args: []string{"Mixed", "5", "a", "b"},
			want: store.SelectTeamsRequest{
				Names:   []string{"a", "b"},
				Options: balance.Options{PlayersPerTeam: 5, Strategy: balance.StrategyMixed},
			},
		},
		{
			args: []string{"8", "a"},
			want: store.SelectTeamsRequest{
				Names:   []string{"a"},
				Options: balance.Options{PlayersPerTeam: 8, Strategy: balance.StrategyOverall},
			},
		},
		{args: []string{"position"}, wantErr: true},
		{args: []string{"0", "a"}, wantErr: true},
		{args: nil, wantErr: true},
	}

	for _, tt := range tbl {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			got, err := parseTeamsArgs(tt.args, balance.DefaultOptions)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscord_HandleIgnoresNonCommands(t *testing.T) {
	d, _ := newTestDiscord(t, 0)

	for _, msg := range []string{"", "hello", "  ", "!unknown", "!addplayer x MID 80"} {
		_, ok := d.handle("user", msg)
		assert.False(t, ok, msg)
	}

	reply, ok := d.handle("user", " !ping ")
	assert.True(t, ok)
	assert.Equal(t, "pong!", reply)
}

func TestDiscord_Teams(t *testing.T) {
	d, names := newTestDiscord(t, 14)

	reply, ok := d.handle("user", "!teams mixed 7 "+strings.Join(names, " "))
	require.True(t, ok)
	assert.Contains(t, reply, "⚪ *Time Branco*")
	assert.Contains(t, reply, "⚫ *Time Preto*")
	for _, name := range names {
		assert.Contains(t, reply, "- "+name+" (")
	}

	reply, _ = d.handle("user", "!teams 8 "+strings.Join(names, " "))
	assert.Equal(t, "not enough players: 16 required, 14 available", reply)

	reply, _ = d.handle("user", "!teams p00 ghost")
	assert.Equal(t, "missing players are required to register: ghost", reply)
}

func TestDiscord_Draft(t *testing.T) {
	d, names := newTestDiscord(t, 14)

	reply, ok := d.handle("user", "!draft "+strings.Join(names, " "))
	require.True(t, ok)
	assert.Contains(t, reply, "*Time do p00*")
	assert.Contains(t, reply, "*Time do p01*")

	reply, _ = d.handle("user", "!draft p00 P00")
	assert.Equal(t, "captains must be different players", reply)

	reply, _ = d.handle("user", "!draft p00")
	assert.True(t, strings.HasPrefix(reply, "usage:"))
}

func TestDiscord_RosterAdmin(t *testing.T) {
	d, _ := newTestDiscord(t, 0)

	reply, _ := d.handle("user", "!roster")
	assert.Equal(t, "roster is empty", reply)

	reply, _ = d.handle("admin", "!addplayer Marta ATT 95")
	assert.Equal(t, "player registered: Marta (95)", reply)

	reply, _ = d.handle("admin", "!addplayer Formiga XYZ 90")
	assert.Contains(t, reply, "unknown position")

	reply, _ = d.handle("admin", "!addplayer Formiga MID 100")
	assert.Equal(t, "overall must be a number between 1 and 99", reply)

	reply, _ = d.handle("user", "!roster")
	assert.Contains(t, reply, "Marta")

	reply, _ = d.handle("admin", "!remove marta")
	assert.Equal(t, "player removed", reply)

	reply, _ = d.handle("admin", "!remove marta")
	assert.Equal(t, "player not found", reply)
}

func TestUserError(t *testing.T) {
	reply, ok := userError(fmt.Errorf("draft: %w", store.ErrNoCaptain))
	assert.True(t, ok)
	assert.Equal(t, "captain name is required", reply)

	_, ok = userError(errors.New("boom"))
	assert.False(t, ok)
}

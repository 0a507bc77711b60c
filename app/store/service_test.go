package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobylevd/pelada-bot/app/balance"
)

func newTestService(t *testing.T, n int) (*Service, []string) {
	t.Helper()
	svc := &Service{Store: newTestStore(t), Balancer: balance.New(balance.WithSeed(1))}

	positions := []balance.Position{balance.DEF, balance.MID, balance.ATT}
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("player%02d", i)
		_, err := svc.Register(context.Background(), balance.Player{
			Name:     names[i],
			Position: positions[i%len(positions)],
			Overall:  60 + i,
		})
		require.NoError(t, err)
	}
	return svc, names
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	svc := &Service{Store: newTestStore(t)}

	pl, err := svc.Register(ctx, balance.Player{
		Name:       " Cafu ",
		Position:   "def",
		Attributes: balance.Attributes{Pace: 80, Shooting: 80, Passing: 80, Dribbling: 80, Defending: 80, Physical: 80},
		Club:       "Roma",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pl.ID, "id must be generated")
	assert.Equal(t, "Cafu", pl.Name)
	assert.Equal(t, balance.DEF, pl.Position)
	assert.Equal(t, 80, pl.Overall, "overall derived from attributes")

	updated, err := svc.Register(ctx, balance.Player{Name: "cafu", Position: balance.DEF, Overall: 88})
	require.NoError(t, err)
	assert.Equal(t, pl.ID, updated.ID, "same name keeps the id")

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 88, all[0].Overall)
	assert.Equal(t, "Roma", all[0].Club, "stored club kept")
	assert.Equal(t, 80, all[0].Attributes.Pace, "stored attributes kept")

	_, err = svc.Register(ctx, balance.Player{Name: "Ronaldo", Position: "striker"})
	assert.Error(t, err)
	_, err = svc.Register(ctx, balance.Player{Name: "  ", Position: balance.ATT})
	assert.Error(t, err)
}

func TestService_RegisterUpdateKeepsStoredFields(t *testing.T) {
	ctx := context.Background()
	svc := &Service{Store: newTestStore(t)}

	attrs := balance.Attributes{Pace: 90, Shooting: 90, Passing: 70, Dribbling: 85, Defending: 40, Physical: 70}
	pl, err := svc.Register(ctx, balance.Player{
		Name:        "Marta",
		Position:    balance.ATT,
		Attributes:  attrs,
		Club:        "Orlando Pride",
		Nationality: "Brazil",
		Age:         38,
		Photo:       "marta.png",
	})
	require.NoError(t, err)

	// overall only, as the chat command sends it
	updated, err := svc.Register(ctx, balance.Player{Name: "marta", Position: balance.ATT, Overall: 93})
	require.NoError(t, err)
	assert.Equal(t, pl.ID, updated.ID)

	got, err := svc.Resolve(ctx, []string{"Marta"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 93, got[0].Overall)
	assert.Equal(t, attrs, got[0].Attributes)
	assert.Equal(t, "Orlando Pride", got[0].Club)
	assert.Equal(t, "Brazil", got[0].Nationality)
	assert.Equal(t, 38, got[0].Age)
	assert.Equal(t, "marta.png", got[0].Photo)

	// nothing but the position, the stored overall stays
	_, err = svc.Register(ctx, balance.Player{Name: "Marta", Position: balance.MID})
	require.NoError(t, err)
	got, err = svc.Resolve(ctx, []string{"Marta"})
	require.NoError(t, err)
	assert.Equal(t, 93, got[0].Overall)
	assert.Equal(t, balance.MID, got[0].Position)

	// new attributes without overall, the overall is derived from them
	flat := balance.Attributes{Pace: 70, Shooting: 70, Passing: 70, Dribbling: 70, Defending: 70, Physical: 70}
	updated, err = svc.Register(ctx, balance.Player{Name: "Marta", Position: balance.MID, Attributes: flat})
	require.NoError(t, err)
	assert.Equal(t, 70, updated.Overall)
	assert.Equal(t, "Orlando Pride", updated.Club)
}

func TestService_Resolve(t *testing.T) {
	ctx := context.Background()
	svc, names := newTestService(t, 4)

	players, err := svc.Resolve(ctx, []string{names[2], "PLAYER00", names[2], names[1]})
	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.Equal(t, names[2], players[0].Name)
	assert.Equal(t, names[0], players[1].Name)
	assert.Equal(t, names[1], players[2].Name)

	_, err = svc.Resolve(ctx, []string{names[0], "ghost", "nobody"})
	var missing ErrMissing
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, ErrMissing{"ghost", "nobody"}, missing)
	assert.Equal(t, "missing players are required to register: ghost, nobody", err.Error())
}

func TestService_SelectTeams(t *testing.T) {
	ctx := context.Background()
	svc, names := newTestService(t, 16)

	m, err := svc.SelectTeams(ctx, SelectTeamsRequest{
		Names:   names[:14],
		Options: balance.Options{PlayersPerTeam: 7, Strategy: balance.StrategyMixed},
	})
	require.NoError(t, err)
	assert.Len(t, m[0].Players, 7)
	assert.Len(t, m[1].Players, 7)
	assert.Equal(t, balance.TeamAName, m[0].Name)

	_, err = svc.SelectTeams(ctx, SelectTeamsRequest{
		Names:   names[:14],
		Options: balance.Options{PlayersPerTeam: 8, Strategy: balance.StrategyOverall},
	})
	var notEnough balance.ErrNotEnoughPlayers
	require.True(t, errors.As(err, &notEnough))
	assert.Equal(t, 16, notEnough.Required)
	assert.Equal(t, 14, notEnough.Available)
}

func TestService_Draft(t *testing.T) {
	ctx := context.Background()
	svc, names := newTestService(t, 14)

	m, err := svc.Draft(ctx, DraftRequest{
		Captains: [2]string{names[13], names[0]},
		Names:    names,
	})
	require.NoError(t, err)
	assert.Equal(t, "Time do "+names[13], m[0].Name)
	assert.Equal(t, "Time do "+names[0], m[1].Name)
	assert.Len(t, m[0].Players, balance.DraftTeamSize)
	assert.Len(t, m[1].Players, balance.DraftTeamSize)

	_, err = svc.Draft(ctx, DraftRequest{Captains: [2]string{names[1], "PLAYER01"}, Names: names})
	assert.ErrorIs(t, err, balance.ErrSameCaptain)

	_, err = svc.Draft(ctx, DraftRequest{Captains: [2]string{names[1], "ghost"}, Names: names})
	var missing ErrMissing
	assert.True(t, errors.As(err, &missing))
}

func TestService_DraftBlankCaptain(t *testing.T) {
	ctx := context.Background()
	svc, names := newTestService(t, 14)

	for _, captains := range [][2]string{{" ", names[0]}, {"", names[0]}, {names[0], ""}} {
		_, err := svc.Draft(ctx, DraftRequest{Captains: captains})
		assert.ErrorIs(t, err, ErrNoCaptain, "captains %q", captains)

		_, err = svc.Draft(ctx, DraftRequest{Captains: captains, Names: names[1:]})
		assert.ErrorIs(t, err, ErrNoCaptain, "captains %q", captains)
	}
}

func TestService_DraftCaptainsKeepTheirTeams(t *testing.T) {
	ctx := context.Background()
	svc, names := newTestService(t, 14)

	// captains are not repeated in the names
	m, err := svc.Draft(ctx, DraftRequest{Captains: [2]string{names[5], names[0]}, Names: names[6:]})
	require.NoError(t, err)
	assert.Equal(t, "Time do "+names[5], m[0].Name)
	assert.Equal(t, "Time do "+names[0], m[1].Name)
	assert.Equal(t, names[5], m[0].Players[0].Name)
	assert.Equal(t, names[0], m[1].Players[0].Name)
	assert.Len(t, m[0].Players, 5)
	assert.Len(t, m[1].Players, 5)

	// captains only, no one to pick
	m, err = svc.Draft(ctx, DraftRequest{Captains: [2]string{names[2], names[3]}})
	require.NoError(t, err)
	assert.Len(t, m[0].Players, 1)
	assert.Len(t, m[1].Players, 1)
}

func TestService_Remove(t *testing.T) {
	ctx := context.Background()
	svc, names := newTestService(t, 2)

	require.NoError(t, svc.Remove(ctx, names[0]))
	assert.ErrorIs(t, svc.Remove(ctx, names[0]), ErrNotFound)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

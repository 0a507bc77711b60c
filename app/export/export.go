// Package export renders generated teams for sharing.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/syohex/go-texttable"

	"github.com/bobylevd/pelada-bot/app/balance"
)

var markers = [2]string{"⚪", "⚫"}

// Text returns the match as a chat-friendly message, one player per line.
func Text(m balance.Match) string {
	var sb strings.Builder
	for i, team := range m {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s *%s* (Overall: %d)\n", markers[i], team.Name, team.AverageRating)
		for _, p := range team.Players {
			fmt.Fprintf(&sb, "- %s (%d)\n", p.Name, p.Overall)
		}
	}
	return sb.String()
}

// Table renders both teams side by side.
func Table(m balance.Match) string {
	tbl := &texttable.TextTable{}
	_ = tbl.SetHeader(
		fmt.Sprintf("%s (%d)", m[0].Name, m[0].AverageRating),
		"Pos",
		fmt.Sprintf("%s (%d)", m[1].Name, m[1].AverageRating),
		"Pos",
	)

	rows := max(len(m[0].Players), len(m[1].Players))
	for i := 0; i < rows; i++ {
		row := make([]string, 0, 4)
		for _, team := range m {
			if i >= len(team.Players) {
				row = append(row, "", "")
				continue
			}
			p := team.Players[i]
			row = append(row, p.String(), string(p.Position))
		}
		_ = tbl.AddRow(row...)
	}

	return tbl.Draw()
}

// Roster renders the players with their ratings.
func Roster(players []balance.Player) string {
	tbl := &texttable.TextTable{}
	_ = tbl.SetHeader("Name", "Pos", "OVR", "PAC", "SHO", "PAS", "DRI", "DEF", "PHY", "Club")

	for _, p := range players {
		a := p.Attributes
		_ = tbl.AddRow(
			p.Name,
			string(p.Position),
			strconv.Itoa(p.Overall),
			strconv.Itoa(a.Pace),
			strconv.Itoa(a.Shooting),
			strconv.Itoa(a.Passing),
			strconv.Itoa(a.Dribbling),
			strconv.Itoa(a.Defending),
			strconv.Itoa(a.Physical),
			p.Club,
		)
	}

	return tbl.Draw()
}

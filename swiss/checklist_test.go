/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/mikeb26/swisspair/tournament"
)

func checklistFixture() *tournament.Tournament {
	return &tournament.Tournament{
		PlayedRounds: 2,
		TotalRounds:  4,
		Players: []tournament.Player{
			{ID: 1, Seed: 1, Name: "Alice", Score: 2.0, Games: []tournament.Game{
				wonGame(3, tournament.ColorWhite),
				wonGame(2, tournament.ColorBlack),
			}},
			{ID: 2, Seed: 2, Name: "Bob", Score: 1.0, Games: []tournament.Game{
				wonGame(4, tournament.ColorWhite),
				lostGame(1, tournament.ColorWhite),
			}},
			{ID: 3, Seed: 3, Name: "Carol", Score: 1.0, Games: []tournament.Game{
				lostGame(1, tournament.ColorBlack),
				wonGame(4, tournament.ColorBlack),
			}},
			{ID: 4, Seed: 4, Name: "Dan", Score: 0.0, Games: []tournament.Game{
				lostGame(2, tournament.ColorBlack),
				lostGame(3, tournament.ColorWhite),
			}},
		},
	}
}

func auditColumns() ([]string, func(*tournament.Player) []string) {
	headers := []string{"Seed", "Player", "Score", "Balance", "Due"}
	annotate := func(p *tournament.Player) []string {
		return []string{
			fmt.Sprintf("%d", p.Seed),
			p.Name,
			fmt.Sprintf("%.1f", p.Score),
			fmt.Sprintf("%+d", p.ColorBalance()),
			p.ColorPreference().String(),
		}
	}
	return headers, annotate
}

func TestBuildChecklistOutput(t *testing.T) {
	trn := checklistFixture()
	headers, annotate := auditColumns()

	got := BuildChecklistOutput(headers, annotate, trn, trn.Eligible())

	g := goldie.New(t)
	g.Assert(t, "checklist", []byte(got))
}

func TestBuildChecklistOutputPadsShortRows(t *testing.T) {
	trn := checklistFixture()
	headers := []string{"Seed", "Player", "Extra"}
	annotate := func(p *tournament.Player) []string {
		// narrower than the header set; the missing column is padded
		return []string{fmt.Sprintf("%d", p.Seed), p.Name}
	}

	got := BuildChecklistOutput(headers, annotate, trn, trn.Eligible())
	assert.Contains(t, got, "Seed  Player  Extra\n")
	assert.Contains(t, got, "1     Alice\n")
}

func TestBuildChecklistOutputSkipsUnknownIDs(t *testing.T) {
	trn := checklistFixture()
	headers, annotate := auditColumns()

	got := BuildChecklistOutput(headers, annotate, trn,
		[]tournament.PlayerID{1, 99})
	assert.Contains(t, got, "Alice")
	assert.NotContains(t, got, "99")
}

/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeb26/swisspair/tournament"
)

func TestPartitionBrackets(t *testing.T) {
	trn := &tournament.Tournament{
		PlayedRounds: 1,
		Players: []tournament.Player{
			playerWithGames(1, 1, wonGame(4, tournament.ColorWhite)),
			playerWithGames(2, 2, lostGame(3, tournament.ColorWhite)),
			playerWithGames(3, 3, wonGame(2, tournament.ColorBlack)),
			playerWithGames(4, 4, lostGame(1, tournament.ColorBlack)),
			playerWithGames(5, 5, byeGame()),
		},
	}

	brackets := partitionBrackets(trn)
	require.Len(t, brackets, 2)

	// highest score group first; rank order within a group
	assert.Equal(t, 1.0, brackets[0].score)
	assert.Equal(t, []tournament.PlayerID{1, 3, 5}, brackets[0].members)
	assert.Equal(t, 0.0, brackets[1].score)
	assert.Equal(t, []tournament.PlayerID{2, 4}, brackets[1].members)
}

func TestPartitionBracketsUsesVirtualScore(t *testing.T) {
	players := freshPlayers(4)
	players[0].Accel = 1.0
	players[1].Accel = 1.0
	trn := &tournament.Tournament{Players: players}

	brackets := partitionBrackets(trn)
	require.Len(t, brackets, 2)
	assert.Equal(t, []tournament.PlayerID{1, 2}, brackets[0].members)
	assert.Equal(t, []tournament.PlayerID{3, 4}, brackets[1].members)
}

func TestCollapseLowest(t *testing.T) {
	trn := &tournament.Tournament{Players: freshPlayers(6)}
	brackets := []bracket{
		{score: 2.0, members: []tournament.PlayerID{1}},
		{score: 1.0, members: []tournament.PlayerID{2, 3}},
		{score: 0.0, members: []tournament.PlayerID{4, 5, 6}},
	}

	merged := collapseLowest(trn, brackets)
	require.Len(t, merged, 2)
	assert.Equal(t, 2.0, merged[0].score)
	// the merged group takes the lower score and keeps rank order, upper
	// group first
	assert.Equal(t, 0.0, merged[1].score)
	assert.Equal(t, []tournament.PlayerID{2, 3, 4, 5, 6}, merged[1].members)
}

func TestWorkingOrderPutsFloatersFirst(t *testing.T) {
	b := bracket{
		score:    1.0,
		members:  []tournament.PlayerID{3, 4},
		floaters: []tournament.PlayerID{1},
	}
	assert.Equal(t, []tournament.PlayerID{1, 3, 4}, b.working())
}

func TestFloatOrder(t *testing.T) {
	trn := &tournament.Tournament{
		PlayedRounds: 1,
		Players: []tournament.Player{
			playerWithGames(1, 1, lostGame(2, tournament.ColorWhite)),
			playerWithGames(2, 2, wonGame(1, tournament.ColorBlack)),
			playerWithGames(3, 3, byeGame()),
		},
	}

	ids := []tournament.PlayerID{1, 3, 2}
	floatOrder(trn, ids)
	// higher score first, better rank breaking the tie
	assert.Equal(t, []tournament.PlayerID{2, 3, 1}, ids)
}

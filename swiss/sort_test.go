/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mikeb26/swisspair/tournament"
)

func TestSortResults(t *testing.T) {
	trn := &tournament.Tournament{
		PlayedRounds: 1,
		Players: []tournament.Player{
			playerWithGames(1, 1, wonGame(4, tournament.ColorWhite)),
			playerWithGames(2, 2, lostGame(3, tournament.ColorBlack)),
			playerWithGames(3, 3, wonGame(2, tournament.ColorWhite)),
			playerWithGames(4, 4, lostGame(1, tournament.ColorBlack)),
			playerWithGames(5, 5, byeGame()),
		},
	}

	pairings := []Pairing{
		NewBye(5),
		NewPairing(2, 4),
		NewPairing(1, 3),
	}
	SortResults(pairings, trn)

	// the board whose stronger side scores higher comes first; byes sort
	// after every played board
	assert.Equal(t, []Pairing{
		NewPairing(1, 3),
		NewPairing(2, 4),
		NewBye(5),
	}, pairings)

	// sorting is idempotent
	again := append([]Pairing{}, pairings...)
	SortResults(again, trn)
	assert.Equal(t, pairings, again)
}

func TestSortResultsBreaksScoreTiesByRank(t *testing.T) {
	trn := &tournament.Tournament{Players: freshPlayers(6)}

	pairings := []Pairing{
		NewPairing(5, 2),
		NewPairing(6, 3),
		NewPairing(1, 4),
	}
	SortResults(pairings, trn)

	assert.Equal(t, []Pairing{
		NewPairing(1, 4),
		NewPairing(5, 2),
		NewPairing(6, 3),
	}, pairings)
}

/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeb26/swisspair/tournament"
)

// freshPlayers builds n unplayed players with id and seed i+1.
func freshPlayers(n int) []tournament.Player {
	players := make([]tournament.Player, 0, n)
	for i := 1; i <= n; i++ {
		players = append(players, tournament.Player{
			ID:   tournament.PlayerID(i),
			Seed: i,
		})
	}
	return players
}

func wonGame(opp tournament.PlayerID, c tournament.Color) tournament.Game {
	return tournament.Game{Opponent: opp, Color: c, Played: true, Points: 1.0}
}

func lostGame(opp tournament.PlayerID, c tournament.Color) tournament.Game {
	return tournament.Game{Opponent: opp, Color: c, Played: true}
}

func byeGame() tournament.Game {
	return tournament.Game{IsBye: true, Points: 1.0}
}

func score(games ...tournament.Game) float64 {
	total := 0.0
	for _, g := range games {
		total += g.Points
	}
	return total
}

func playerWithGames(id, seed int, games ...tournament.Game) tournament.Player {
	return tournament.Player{
		ID:    tournament.PlayerID(id),
		Seed:  seed,
		Score: score(games...),
		Games: games,
	}
}

func TestRoundOnePairsTopHalfAgainstBottom(t *testing.T) {
	trn := &tournament.Tournament{
		Players:     freshPlayers(4),
		TotalRounds: 3,
	}

	pairings, err := GetInfo(SystemBurstein).ComputeMatching(trn, nil)
	require.NoError(t, err)
	require.Len(t, pairings, 2)

	// seed 1 meets seed 3 and seed 2 meets seed 4; the odd-seeded senior
	// of each board takes white
	assert.Equal(t, NewPairing(1, 3), pairings[0])
	assert.Equal(t, NewPairing(4, 2), pairings[1])
}

func TestRoundOneOddCountAssignsBye(t *testing.T) {
	trn := &tournament.Tournament{
		Players:     freshPlayers(5),
		TotalRounds: 4,
	}

	pairings, err := GetInfo(SystemBurstein).ComputeMatching(trn, nil)
	require.NoError(t, err)
	require.Len(t, pairings, 3)

	assert.Equal(t, NewPairing(1, 3), pairings[0])
	assert.Equal(t, NewPairing(4, 2), pairings[1])
	// the bye goes to the lowest ranked player and sorts last
	assert.Equal(t, NewBye(5), pairings[2])
}

func TestPreferenceClashForcesDownfloat(t *testing.T) {
	// after round one both leaders are due black, so they cannot meet;
	// one pairs the byed leader and the other floats down
	trn := &tournament.Tournament{
		PlayedRounds: 1,
		TotalRounds:  3,
		Players: []tournament.Player{
			playerWithGames(1, 1, wonGame(3, tournament.ColorWhite)),
			playerWithGames(2, 2, wonGame(4, tournament.ColorWhite)),
			playerWithGames(3, 3, lostGame(1, tournament.ColorBlack)),
			playerWithGames(4, 4, lostGame(2, tournament.ColorBlack)),
			playerWithGames(5, 5, byeGame()),
		},
	}

	var audit bytes.Buffer
	pairings, err := GetInfo(SystemBurstein).ComputeMatching(trn, &audit)
	require.NoError(t, err)
	require.Len(t, pairings, 3)

	assert.Equal(t, NewPairing(5, 1), pairings[0])
	assert.Equal(t, NewPairing(3, 2), pairings[1])
	assert.Equal(t, NewBye(4), pairings[2])

	assert.Contains(t, audit.String(), "score group")
	assert.Contains(t, audit.String(), "floats down")
}

func TestRematchOnlyUnderExhaustion(t *testing.T) {
	snapshot := func() *tournament.Tournament {
		return &tournament.Tournament{
			PlayedRounds: 1,
			TotalRounds:  2,
			Players: []tournament.Player{
				playerWithGames(1, 1, wonGame(2, tournament.ColorWhite)),
				playerWithGames(2, 2, lostGame(1, tournament.ColorBlack)),
			},
		}
	}

	// Burstein admits a second meeting once no rematch-free completion
	// exists; colors rebalance
	pairings, err := GetInfo(SystemBurstein).ComputeMatching(snapshot(), nil)
	require.NoError(t, err)
	require.Len(t, pairings, 1)
	assert.Equal(t, NewPairing(2, 1), pairings[0])

	// Dutch never re-pairs an already-played pair
	_, err = GetInfo(SystemDutch).ComputeMatching(snapshot(), nil)
	var nvp *NoValidPairingError
	require.ErrorAs(t, err, &nvp)
}

func TestThirdMeetingNeverAllowed(t *testing.T) {
	trn := &tournament.Tournament{
		PlayedRounds: 2,
		TotalRounds:  3,
		Players: []tournament.Player{
			playerWithGames(1, 1,
				wonGame(2, tournament.ColorWhite),
				wonGame(2, tournament.ColorBlack)),
			playerWithGames(2, 2,
				lostGame(1, tournament.ColorBlack),
				lostGame(1, tournament.ColorWhite)),
		},
	}

	_, err := GetInfo(SystemBurstein).ComputeMatching(trn, nil)
	var nvp *NoValidPairingError
	require.ErrorAs(t, err, &nvp)
	assert.Contains(t, err.Error(), "no valid pairing exists")
}

func TestSecondByeAvoidedWhenPossible(t *testing.T) {
	// both lower-scored players already had a bye, so the remaining
	// bye-free player receives it even though they lead the field
	trn := &tournament.Tournament{
		PlayedRounds: 2,
		TotalRounds:  4,
		Players: []tournament.Player{
			playerWithGames(1, 1,
				wonGame(2, tournament.ColorWhite),
				wonGame(3, tournament.ColorWhite)),
			playerWithGames(2, 2,
				lostGame(1, tournament.ColorBlack),
				byeGame()),
			playerWithGames(3, 3,
				byeGame(),
				lostGame(1, tournament.ColorBlack)),
		},
	}

	pairings, err := GetInfo(SystemBurstein).ComputeMatching(trn, nil)
	require.NoError(t, err)
	require.Len(t, pairings, 2)

	assert.Equal(t, NewPairing(3, 2), pairings[0])
	assert.Equal(t, NewBye(1), pairings[1])
}

func TestInvalidSnapshotFailsAsNoValidPairing(t *testing.T) {
	trn := &tournament.Tournament{
		Players: []tournament.Player{
			{ID: 1, Seed: 1},
			{ID: 2, Seed: 1},
		},
	}

	_, err := GetInfo(SystemBurstein).ComputeMatching(trn, nil)
	var nvp *NoValidPairingError
	require.ErrorAs(t, err, &nvp)
}

func TestMatchingIsDeterministic(t *testing.T) {
	snapshot := func() *tournament.Tournament {
		return &tournament.Tournament{
			PlayedRounds: 1,
			TotalRounds:  4,
			Players: []tournament.Player{
				playerWithGames(1, 1, wonGame(5, tournament.ColorWhite)),
				playerWithGames(2, 2, wonGame(6, tournament.ColorBlack)),
				playerWithGames(3, 3, wonGame(7, tournament.ColorWhite)),
				playerWithGames(4, 4, lostGame(8, tournament.ColorBlack)),
				playerWithGames(5, 5, lostGame(1, tournament.ColorBlack)),
				playerWithGames(6, 6, lostGame(2, tournament.ColorWhite)),
				playerWithGames(7, 7, lostGame(3, tournament.ColorBlack)),
				playerWithGames(8, 8, wonGame(4, tournament.ColorWhite)),
			},
		}
	}

	var audit1, audit2 bytes.Buffer
	first, err := GetInfo(SystemBurstein).ComputeMatching(snapshot(), &audit1)
	require.NoError(t, err)
	second, err := GetInfo(SystemBurstein).ComputeMatching(snapshot(), &audit2)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, audit1.String(), audit2.String())
}

func TestWithdrawnPlayersAreNotPaired(t *testing.T) {
	players := freshPlayers(5)
	players[4].Withdrawn = true
	trn := &tournament.Tournament{Players: players, TotalRounds: 3}

	pairings, err := GetInfo(SystemBurstein).ComputeMatching(trn, nil)
	require.NoError(t, err)
	require.Len(t, pairings, 2)
	for _, p := range pairings {
		assert.NotContains(t, p.Players(), tournament.PlayerID(5))
	}
}

func TestBursteinAccelerations(t *testing.T) {
	trn := &tournament.Tournament{
		Players:     freshPlayers(10),
		TotalRounds: 5,
	}

	require.NoError(t, GetInfo(SystemBurstein).UpdateAccelerations(trn))
	for _, p := range trn.Players {
		if p.Seed <= 5 {
			assert.Equal(t, 1.0, p.Accel, "seed %d", p.Seed)
		} else {
			assert.Equal(t, 0.0, p.Accel, "seed %d", p.Seed)
		}
	}

	// past the acceleration window the overlay is cleared
	trn.PlayedRounds = 3
	require.NoError(t, GetInfo(SystemBurstein).UpdateAccelerations(trn))
	for _, p := range trn.Players {
		assert.Equal(t, 0.0, p.Accel, "seed %d", p.Seed)
	}
}

func TestAcceleratedRoundOnePairsWithinHalves(t *testing.T) {
	trn := &tournament.Tournament{
		Players:     freshPlayers(4),
		TotalRounds: 4,
	}

	info := GetInfo(SystemBurstein)
	require.NoError(t, info.UpdateAccelerations(trn))

	pairings, err := info.ComputeMatching(trn, nil)
	require.NoError(t, err)
	require.Len(t, pairings, 2)

	// the virtual bonus splits the field into two score groups, so the
	// halves pair among themselves
	assert.Equal(t, NewPairing(1, 2), pairings[0])
	assert.Equal(t, NewPairing(3, 4), pairings[1])
}

func TestAccelerationUnsupported(t *testing.T) {
	trn := &tournament.Tournament{Players: freshPlayers(4), TotalRounds: 4}

	var unsup *UnsupportedFeatureError
	err := GetInfo(SystemDutch).UpdateAccelerations(trn)
	require.ErrorAs(t, err, &unsup)
	assert.Equal(t, SystemDutch, unsup.System)

	err = GetInfo(SystemNone).UpdateAccelerations(trn)
	require.ErrorAs(t, err, &unsup)

	_, err = GetInfo(SystemNone).ComputeMatching(trn, nil)
	require.ErrorAs(t, err, &unsup)
}

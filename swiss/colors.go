/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"github.com/mikeb26/swisspair/tournament"
)

// allocateColors decides which member of a resolved pair plays white. The
// clauses apply in order until one decides; the final clause is total, so
// allocation never fails:
//
//  1. prefer the assignment that keeps both cumulative color balances
//     closer to equality
//  2. honor a lone explicit preference
//  3. on a preference clash, walk both color histories from the earliest
//     round and let the player who held the contested color at the first
//     divergence yield it now; identical or prefix histories leave the
//     clash undecided and fall through
//  4. the higher-priority player receives the seed-parity default: white
//     on an odd seed, black on an even one
func allocateColors(t *tournament.Tournament, a,
	b tournament.PlayerID) Pairing {

	pa, pb := t.Player(a), t.Player(b)

	balA, balB := pa.ColorBalance(), pb.ColorBalance()
	costAWhite := abs(balA+1) + abs(balB-1)
	costBWhite := abs(balA-1) + abs(balB+1)
	if costAWhite < costBWhite {
		return NewPairing(a, b)
	}
	if costBWhite < costAWhite {
		return NewPairing(b, a)
	}

	prefA, prefB := pa.ColorPreference(), pb.ColorPreference()
	switch {
	case prefA != tournament.ColorNone && prefB == tournament.ColorNone:
		return NewPairingWithColor(a, b, prefA)
	case prefB != tournament.ColorNone && prefA == tournament.ColorNone:
		return NewPairingWithColor(b, a, prefB)
	case prefA != tournament.ColorNone && prefA != prefB:
		// balanced and both satisfiable
		return NewPairingWithColor(a, b, prefA)
	case prefA != tournament.ColorNone && prefA == prefB:
		divA, divB := FindFirstColorDifference(pa, pb)
		if divA != tournament.ColorNone && divB != tournament.ColorNone {
			if divA == prefA {
				// a already had the contested color there; a yields
				return NewPairingWithColor(b, a, prefB)
			}
			return NewPairingWithColor(a, b, prefA)
		}
		// one history is a prefix of the other; fall through
	}

	senior, junior := a, b
	if pb.Seed < pa.Seed {
		senior, junior = b, a
	}
	if t.Player(senior).Seed%2 == 1 {
		return NewPairingWithColor(senior, junior, tournament.ColorWhite)
	}
	return NewPairingWithColor(senior, junior, tournament.ColorBlack)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

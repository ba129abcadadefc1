/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"io"

	"github.com/mikeb26/swisspair/tournament"
)

// bursteinInfo implements the Burstein variant. It tolerates a color
// imbalance of up to two before a preference becomes absolute, and its
// exhaustion clause admits one rematch in the terminal score group once
// every rematch-free completion is proven impossible; a third meeting is
// never permitted.
type bursteinInfo struct{}

var bursteinRules = rules{
	system:            SystemBurstein,
	maxColorImbalance: 2,
	maxMeetings:       2,
	allowRematch:      true,
}

func (bursteinInfo) ComputeMatching(t *tournament.Tournament,
	checklist io.Writer) ([]Pairing, error) {

	return computeMatching(t, bursteinRules, checklist)
}

// UpdateAccelerations applies the Burstein default acceleration table: the
// top half of the initial seeding carries a one-point virtual bonus while
// fewer than half the scheduled rounds are complete, and the overlay is
// cleared afterward. The adjustment feeds the next round's score-group
// partitioning only; recorded scores are untouched.
func (bursteinInfo) UpdateAccelerations(t *tournament.Tournament) error {
	accelerated := t.PlayedRounds < (t.TotalRounds+1)/2
	topHalf := (len(t.Players) + 1) / 2

	for i := range t.Players {
		if accelerated && t.Players[i].Seed <= topHalf {
			t.Players[i].Accel = 1.0
		} else {
			t.Players[i].Accel = 0
		}
	}

	return nil
}

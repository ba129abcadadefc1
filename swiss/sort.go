/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"sort"

	"github.com/mikeb26/swisspair/tournament"
)

// SortResults places a pairing list into canonical publication order:
// boards descend by the stronger side's score with better rank breaking
// ties, and byes follow all played boards. The order is a pure function of
// the pairing list and snapshot, so sorting an already-sorted list is a
// no-op.
func SortResults(pairings []Pairing, t *tournament.Tournament) {
	sort.SliceStable(pairings, func(i, j int) bool {
		if pairings[i].Bye != pairings[j].Bye {
			return !pairings[i].Bye
		}
		si, ri := boardKey(pairings[i], t)
		sj, rj := boardKey(pairings[j], t)
		if si != sj {
			return si > sj
		}
		return ri < rj
	})
}

// boardKey returns the pairing's sort key: the best virtual score between
// its players and the best (lowest) seed. Seeds are unique per snapshot,
// so no two pairings share a key.
func boardKey(p Pairing, t *tournament.Tournament) (float64, int) {
	best := t.Player(p.White)
	score := best.VirtualScore()
	rank := best.Seed
	if !p.Bye {
		if b := t.Player(p.Black); b != nil {
			if b.VirtualScore() > score {
				score = b.VirtualScore()
			}
			if b.Seed < rank {
				rank = b.Seed
			}
		}
	}
	return score, rank
}

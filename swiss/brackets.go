/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"sort"

	"github.com/mikeb26/swisspair/tournament"
)

// bracket is one score group for the round being paired. members hold the
// players whose virtual score placed them here, in rank order; floaters
// hold players pushed down from the bracket above, ahead of members in
// working order since they carry higher scores.
type bracket struct {
	score    float64
	members  []tournament.PlayerID
	floaters []tournament.PlayerID
}

// working returns the bracket's players in working order: floaters first,
// then origin members by rank.
func (b *bracket) working() []tournament.PlayerID {
	out := make([]tournament.PlayerID, 0, len(b.floaters)+len(b.members))
	out = append(out, b.floaters...)
	out = append(out, b.members...)
	return out
}

// partitionBrackets splits the eligible players into score groups ordered
// highest virtual score first. Within a group players are ordered by rank
// (ascending seed number).
func partitionBrackets(t *tournament.Tournament) []bracket {
	groups := make(map[float64][]tournament.PlayerID)
	for _, id := range t.Eligible() {
		score := t.Player(id).VirtualScore()
		groups[score] = append(groups[score], id)
	}

	var scores []float64
	for score := range groups {
		scores = append(scores, score)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))

	brackets := make([]bracket, 0, len(scores))
	for _, score := range scores {
		ids := groups[score]
		sort.Slice(ids, func(i, j int) bool {
			return t.Player(ids[i]).Seed < t.Player(ids[j]).Seed
		})
		brackets = append(brackets, bracket{score: score, members: ids})
	}

	return brackets
}

// floatOrder sorts players pushed out of a bracket into the order they
// enter the bracket below: higher virtual score first, then better rank.
func floatOrder(t *tournament.Tournament, ids []tournament.PlayerID) {
	sort.Slice(ids, func(i, j int) bool {
		pi, pj := t.Player(ids[i]), t.Player(ids[j])
		if pi.VirtualScore() != pj.VirtualScore() {
			return pi.VirtualScore() > pj.VirtualScore()
		}
		return pi.Seed < pj.Seed
	})
}

// collapseLowest merges the two lowest brackets into one, preserving each
// player's origin score for rank ordering. Used when the terminal bracket
// proves unpairable and the search must widen.
func collapseLowest(t *tournament.Tournament, brackets []bracket) []bracket {
	n := len(brackets)
	if n < 2 {
		return brackets
	}
	upper, lower := brackets[n-2], brackets[n-1]
	merged := bracket{
		score:   lower.score,
		members: append(append([]tournament.PlayerID{}, upper.members...), lower.members...),
	}
	merged.floaters = append(append([]tournament.PlayerID{}, upper.floaters...), lower.floaters...)
	floatOrder(t, merged.floaters)
	return append(brackets[:n-2], merged)
}

/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"sort"

	"github.com/mikeb26/swisspair/tournament"
)

// edgeKey ranks a candidate pairing. Lower keys are preferred. The
// comparison is strict lexicographic and ends on the player identities, so
// no two edges ever compare equal and the search never depends on
// iteration order.
type edgeKey struct {
	// floatClass: 0 when both players originate in this bracket, 1 when
	// one floated in, 2 when both did.
	floatClass int
	// foldDev is the deviation from the ideal half-split complement of the
	// two players' working positions. A fresh even bracket of 2k players
	// pairs position i with position i+k at deviation zero.
	foldDev int
	// colorCost is the best achievable color-balance cost for the pair.
	colorCost int
	// rematch is 1 for edges only legal under the system's relaxation
	// clause; they rank after every rematch-free alternative.
	rematch    int
	loID, hiID tournament.PlayerID
}

func (k edgeKey) less(o edgeKey) bool {
	if k.rematch != o.rematch {
		return k.rematch < o.rematch
	}
	if k.floatClass != o.floatClass {
		return k.floatClass < o.floatClass
	}
	if k.foldDev != o.foldDev {
		return k.foldDev < o.foldDev
	}
	if k.colorCost != o.colorCost {
		return k.colorCost < o.colorCost
	}
	if k.loID != o.loID {
		return k.loID < o.loID
	}
	return k.hiID < o.hiID
}

// edge is a permissible pairing between two working-bracket positions.
type edge struct {
	a, b int
	key  edgeKey
}

// candidateGraph is the eligibility graph for one bracket attempt. It is
// rebuilt per attempt and never persisted.
type candidateGraph struct {
	t      *tournament.Tournament
	nodes  []tournament.PlayerID
	origin []bool
	edges  []edge
	// adj holds, per node, the indexes into edges in ascending rank order.
	adj [][]int
}

// buildCandidateGraph derives the eligibility graph for a working bracket.
// floaterCount positions at the front of nodes are floated-in players.
// When relaxed is true the system's exhaustion clause is in effect: a
// second meeting and a preference clash become permissible, ranked after
// every normal edge.
func buildCandidateGraph(t *tournament.Tournament, r rules,
	nodes []tournament.PlayerID, floaterCount int,
	relaxed bool) *candidateGraph {

	g := &candidateGraph{
		t:      t,
		nodes:  nodes,
		origin: make([]bool, len(nodes)),
	}
	for i := range nodes {
		g.origin[i] = i >= floaterCount
	}

	half := len(nodes) / 2
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			key, ok := g.edgeBetween(r, i, j, half, relaxed)
			if !ok {
				continue
			}
			g.edges = append(g.edges, edge{a: i, b: j, key: key})
		}
	}

	sort.Slice(g.edges, func(i, j int) bool {
		return g.edges[i].key.less(g.edges[j].key)
	})

	g.adj = make([][]int, len(nodes))
	for ei, e := range g.edges {
		g.adj[e.a] = append(g.adj[e.a], ei)
		g.adj[e.b] = append(g.adj[e.b], ei)
	}

	return g
}

// edgeBetween applies the eligibility rules to one candidate pair and, when
// permissible, computes its preference rank.
func (g *candidateGraph) edgeBetween(r rules, i, j, half int,
	relaxed bool) (edgeKey, bool) {

	pi := g.t.Player(g.nodes[i])
	pj := g.t.Player(g.nodes[j])

	meetings := pi.MeetCount(pj.ID)
	if meetings >= r.maxMeetings {
		// exhausted even under relaxation
		return edgeKey{}, false
	}
	rematch := meetings > 0
	if rematch && !relaxed {
		return edgeKey{}, false
	}

	prefI := pi.ColorPreference()
	prefJ := pj.ColorPreference()
	if !ColorPreferencesAreCompatible(prefI, prefJ) {
		// an absolute clash can never be paired; a mere clash only under
		// the exhaustion clause
		if pi.PreferenceIsAbsolute(r.maxColorImbalance) &&
			pj.PreferenceIsAbsolute(r.maxColorImbalance) {
			return edgeKey{}, false
		}
		if !relaxed {
			return edgeKey{}, false
		}
	}

	key := edgeKey{
		foldDev: foldDeviation(i, j, half),
		loID:    minID(pi.ID, pj.ID),
		hiID:    maxID(pi.ID, pj.ID),
	}
	if rematch {
		key.rematch = 1
	}
	if !g.origin[i] {
		key.floatClass++
	}
	if !g.origin[j] {
		key.floatClass++
	}
	key.colorCost = pairColorCost(pi, pj)

	return key, true
}

// foldDeviation measures how far the pair sits from the canonical top-half
// versus bottom-half fold of the working bracket.
func foldDeviation(i, j, half int) int {
	gap := j - i
	if gap < 0 {
		gap = -gap
	}
	dev := gap - half
	if dev < 0 {
		dev = -dev
	}
	return dev
}

// pairColorCost is the smaller of the two color assignments' costs, where
// an assignment's cost is the worse resulting absolute color balance.
func pairColorCost(a, b *tournament.Player) int {
	balA, balB := a.ColorBalance(), b.ColorBalance()
	aWhite := maxAbs(balA+1, balB-1)
	bWhite := maxAbs(balA-1, balB+1)
	if aWhite < bWhite {
		return aWhite
	}
	return bWhite
}

func maxAbs(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if a > b {
		return a
	}
	return b
}

func minID(a, b tournament.PlayerID) tournament.PlayerID {
	if a < b {
		return a
	}
	return b
}

func maxID(a, b tournament.PlayerID) tournament.PlayerID {
	if a > b {
		return a
	}
	return b
}

/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"io"
	"sort"

	"github.com/mikeb26/swisspair/tournament"
)

// rules parameterizes the shared engine per Swiss-system variant. The
// variants differ only in these knobs plus whether a default acceleration
// table exists; the bracket flow, search, and color allocation are common.
type rules struct {
	system System
	// maxColorImbalance is the absolute color-balance magnitude at which a
	// preference may no longer be denied.
	maxColorImbalance int
	// maxMeetings bounds how often two players may face each other; pairs
	// at the bound are ineligible even under relaxation.
	maxMeetings int
	// allowRematch enables the exhaustion clause: once every rematch-free
	// completion of the terminal bracket is proven impossible, a second
	// meeting (and a preference clash) becomes permissible.
	allowRematch bool
}

// computeMatching is the shared matching engine. Brackets are processed
// strictly top down because each bracket's float-in set depends on the
// bracket above; when the terminal bracket proves unpairable the two
// lowest brackets are collapsed and the round is re-paired, widening the
// search until it succeeds or a single unpairable bracket remains.
func computeMatching(t *tournament.Tournament, r rules,
	checklist io.Writer) ([]Pairing, error) {

	if err := t.Validate(); err != nil {
		return nil, &NoValidPairingError{Reason: err.Error()}
	}

	brackets := partitionBrackets(t)
	for {
		pairings, failed := pairBrackets(t, r, brackets, checklist)
		if failed == nil {
			SortResults(pairings, t)
			return pairings, nil
		}
		if len(brackets) < 2 {
			return nil, failed
		}
		logf(checklist, "collapsing lowest score groups and retrying\n")
		brackets = collapseLowest(t, brackets)
	}
}

// pairBrackets runs one full top-down pass over the bracket sequence.
// A non-nil error reports that the terminal bracket could not be resolved.
func pairBrackets(t *tournament.Tournament, r rules, brackets []bracket,
	checklist io.Writer) ([]Pairing, error) {

	var pairings []Pairing
	var carry []tournament.PlayerID

	for i := range brackets {
		b := bracket{
			score:    brackets[i].score,
			members:  brackets[i].members,
			floaters: append(append([]tournament.PlayerID{}, brackets[i].floaters...), carry...),
		}
		floatOrder(t, b.floaters)
		terminal := i == len(brackets)-1

		logf(checklist, "score group %.1f: %d players, %d floated in\n",
			b.score, len(b.members), len(b.floaters))

		res, err := resolveBracket(t, r, &b, terminal, checklist)
		if err != nil {
			return nil, err
		}

		for _, pair := range res.pairs {
			pairings = append(pairings, allocateColors(t, pair[0], pair[1]))
		}
		for _, id := range res.byes {
			logf(checklist, "  bye: %v\n", playerLabel(t, id))
			pairings = append(pairings, NewBye(id))
		}
		for _, id := range res.floats {
			logf(checklist, "  floats down: %v\n", playerLabel(t, id))
		}
		carry = res.floats
	}

	return pairings, nil
}

// resolved is the outcome of one bracket attempt.
type resolved struct {
	pairs  [][2]tournament.PlayerID
	floats []tournament.PlayerID
	byes   []tournament.PlayerID
}

// resolveBracket pairs one working bracket. Non-terminal brackets maximize
// cardinality and float their remainder down; the terminal bracket must
// absorb everything, assigning at most one bye when the count is odd, and
// may invoke the relaxation clause as a last resort.
func resolveBracket(t *tournament.Tournament, r rules, b *bracket,
	terminal bool, checklist io.Writer) (resolved, error) {

	nodes := b.working()
	if len(nodes) == 0 {
		return resolved{}, nil
	}

	if !terminal {
		res, ok := resolveDownfloating(t, r, b, nodes)
		if !ok {
			// everyone floats; the bracket below absorbs them
			res = resolved{floats: append([]tournament.PlayerID{}, nodes...)}
		}
		return res, nil
	}

	res, ok := resolveTerminal(t, r, b, nodes, false)
	if !ok && r.allowRematch {
		logf(checklist, "  no rematch-free completion; relaxing\n")
		res, ok = resolveTerminal(t, r, b, nodes, true)
	}
	if !ok {
		return resolved{}, &NoValidPairingError{
			Reason: fmt.Sprintf("score group %.1f with %d players cannot be completed",
				b.score, len(nodes)),
		}
	}
	return res, nil
}

// resolveDownfloating finds the maximum-cardinality completion of a
// non-terminal bracket, reducing the pair target one step at a time until
// the search succeeds.
func resolveDownfloating(t *tournament.Tournament, r rules, b *bracket,
	nodes []tournament.PlayerID) (resolved, bool) {

	g := buildCandidateGraph(t, r, nodes, len(b.floaters), false)
	for target := len(nodes) / 2; target > 0; target-- {
		pairs, unmatched, ok := g.findMatching(target)
		if !ok {
			continue
		}
		res := resolved{pairs: nodePairs(g, pairs)}
		for _, ni := range unmatched {
			res.floats = append(res.floats, g.nodes[ni])
		}
		floatOrder(t, res.floats)
		return res, true
	}
	return resolved{}, false
}

// resolveTerminal fully pairs the last bracket. An odd count requires a
// bye; candidates are tried lowest rank first, preferring players who have
// not yet received one, and the search backtracks through candidates until
// the remainder completes.
func resolveTerminal(t *tournament.Tournament, r rules, b *bracket,
	nodes []tournament.PlayerID, relaxed bool) (resolved, bool) {

	if len(nodes)%2 == 0 {
		g := buildCandidateGraph(t, r, nodes, len(b.floaters), relaxed)
		pairs, _, ok := g.findMatching(len(nodes) / 2)
		if !ok {
			return resolved{}, false
		}
		return resolved{pairs: nodePairs(g, pairs)}, true
	}

	for _, bye := range byeCandidates(t, nodes) {
		rest := withoutID(nodes, bye)
		g := buildCandidateGraph(t, r, rest, floatersAmong(b, rest), relaxed)
		pairs, _, ok := g.findMatching(len(rest) / 2)
		if !ok {
			continue
		}
		res := resolved{pairs: nodePairs(g, pairs)}
		res.byes = append(res.byes, bye)
		return res, true
	}
	return resolved{}, false
}

// byeCandidates orders the bracket's players by bye preference: players
// without a prior bye come first, lowest rank (highest seed number) ahead
// within each class.
func byeCandidates(t *tournament.Tournament,
	nodes []tournament.PlayerID) []tournament.PlayerID {

	out := append([]tournament.PlayerID{}, nodes...)
	sort.Slice(out, func(i, j int) bool {
		pi, pj := t.Player(out[i]), t.Player(out[j])
		bi, bj := pi.ByeCount(), pj.ByeCount()
		if (bi == 0) != (bj == 0) {
			return bi == 0
		}
		return pi.Seed > pj.Seed
	})
	return out
}

func nodePairs(g *candidateGraph, pairs [][2]int) [][2]tournament.PlayerID {
	out := make([][2]tournament.PlayerID, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, [2]tournament.PlayerID{g.nodes[p[0]], g.nodes[p[1]]})
	}
	return out
}

func withoutID(ids []tournament.PlayerID,
	drop tournament.PlayerID) []tournament.PlayerID {

	out := make([]tournament.PlayerID, 0, len(ids)-1)
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}

// floatersAmong counts how many of rest are floated-in players, assuming
// rest preserves working order with floaters at the front.
func floatersAmong(b *bracket, rest []tournament.PlayerID) int {
	floating := make(map[tournament.PlayerID]bool, len(b.floaters))
	for _, id := range b.floaters {
		floating[id] = true
	}
	n := 0
	for _, id := range rest {
		if floating[id] {
			n++
		}
	}
	return n
}

func playerLabel(t *tournament.Tournament, id tournament.PlayerID) string {
	p := t.Player(id)
	if p == nil {
		return fmt.Sprintf("#%v", id)
	}
	if p.Name != "" {
		return fmt.Sprintf("%v (seed %v)", p.Name, p.Seed)
	}
	return fmt.Sprintf("seed %v", p.Seed)
}

// logf writes one line of the verbose pairing checklist; a nil sink
// disables the audit trail.
func logf(w io.Writer, format string, args ...any) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, format, args...)
}

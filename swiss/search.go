/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

// findMatching searches the candidate graph for a matching of exactly
// target pairs, preferring better-ranked edges. The search is depth-first
// branch and bound: the pivot is always the highest-priority unresolved
// position, its candidate partners are tried in ascending edge rank, and
// leaving the pivot unpaired (to float or take the bye) is the last resort.
// A count/degree feasibility test prunes branches before recursion and
// proven-dead remainders are memoized, keeping realistic brackets cheap.
//
// The first completion found under this fixed scan order is the one
// reported, which makes the result a pure function of the graph.
//
// Returns the chosen pairs as node-index tuples plus the unmatched
// positions in working order, or ok=false when no matching of the
// requested size exists.
func (g *candidateGraph) findMatching(target int) (pairs [][2]int,
	unmatched []int, ok bool) {

	if 2*target > len(g.nodes) {
		return nil, nil, false
	}
	s := &searcher{
		g:        g,
		target:   target,
		budget:   len(g.nodes) - 2*target,
		matched:  make([]bool, len(g.nodes)),
		skipped:  make([]bool, len(g.nodes)),
		deadEnds: make(map[string]bool),
	}
	if !s.search(0) {
		return nil, nil, false
	}
	// positions the search never reached are unmatched too, not only the
	// explicitly skipped ones
	for i := range g.nodes {
		if !s.matched[i] {
			unmatched = append(unmatched, i)
		}
	}
	return s.picked, unmatched, true
}

type searcher struct {
	g       *candidateGraph
	target  int
	budget  int // how many positions may remain unmatched
	matched []bool
	skipped []bool
	picked  [][2]int
	// deadEnds memoizes remainder states proven to have no completion.
	deadEnds map[string]bool
}

func (s *searcher) search(made int) bool {
	if made == s.target {
		return true
	}
	pivot := s.nextPivot()
	if pivot < 0 {
		return false
	}
	key := s.stateKey()
	if s.deadEnds[key] {
		return false
	}

	for _, ei := range s.g.adj[pivot] {
		e := s.g.edges[ei]
		other := e.a + e.b - pivot
		if s.matched[other] || s.skipped[other] {
			continue
		}
		s.matched[pivot], s.matched[other] = true, true
		s.picked = append(s.picked, [2]int{e.a, e.b})
		if s.feasible(made+1) && s.search(made+1) {
			return true
		}
		s.picked = s.picked[:len(s.picked)-1]
		s.matched[pivot], s.matched[other] = false, false
	}

	if s.skippedCount() < s.budget {
		s.skipped[pivot] = true
		if s.feasible(made) && s.search(made) {
			return true
		}
		s.skipped[pivot] = false
	}

	s.deadEnds[key] = true
	return false
}

func (s *searcher) nextPivot() int {
	for i := range s.g.nodes {
		if !s.matched[i] && !s.skipped[i] {
			return i
		}
	}
	return -1
}

func (s *searcher) skippedCount() int {
	n := 0
	for _, sk := range s.skipped {
		if sk {
			n++
		}
	}
	return n
}

// feasible is the bound of the branch and bound: ignoring preference rank,
// can the remaining positions still complete a matching of the target
// size? It counts remaining positions and positions with no remaining
// partner; isolated positions can only be absorbed by the unmatched
// budget.
func (s *searcher) feasible(made int) bool {
	needed := s.target - made
	if needed == 0 {
		return true
	}
	remaining := 0
	isolated := 0
	for i := range s.g.nodes {
		if s.matched[i] || s.skipped[i] {
			continue
		}
		remaining++
		if !s.hasPartner(i) {
			isolated++
		}
	}
	budgetLeft := s.budget - s.skippedCount()
	if isolated > budgetLeft {
		return false
	}
	return remaining-isolated >= 2*needed
}

func (s *searcher) hasPartner(i int) bool {
	for _, ei := range s.g.adj[i] {
		e := s.g.edges[ei]
		other := e.a + e.b - i
		if !s.matched[other] && !s.skipped[other] {
			return true
		}
	}
	return false
}

func (s *searcher) stateKey() string {
	buf := make([]byte, len(s.matched))
	for i := range s.matched {
		switch {
		case s.matched[i]:
			buf[i] = 'm'
		case s.skipped[i]:
			buf[i] = 's'
		default:
			buf[i] = '.'
		}
	}
	return string(buf)
}

/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mikeb26/swisspair/internal"
	"github.com/mikeb26/swisspair/swiss"
	"github.com/mikeb26/swisspair/tournament"
)

// BuildPairingsOutput formats an engine-produced pairing list into the
// aligned board table the club publishes, one table per invocation. The
// pairings are expected in canonical order (swiss.SortResults).
func BuildPairingsOutput(t *tournament.Tournament, section string,
	pairings []swiss.Pairing) string {

	var sb strings.Builder

	if section != "" {
		sb.WriteString(fmt.Sprintf("%s Section\n", section))
	}
	sb.WriteString(fmt.Sprintf("Round %v Pairings:\n\n", t.PlayedRounds+1))

	type row struct{ board, white, black string }
	var rows []row
	boardNum := 1
	for _, p := range pairings {
		var r row
		r.white = playerCell(t, p.White)
		if p.Bye {
			r.board = "n/a"
			r.black = "BYE(1)"
		} else {
			r.board = fmt.Sprintf("%d.", boardNum)
			r.black = playerCell(t, p.Black)
			boardNum++
		}
		rows = append(rows, r)
	}

	// Compute column widths
	maxB, maxW, maxBl := len("Board"), len("White"), len("Black")
	for _, r := range rows {
		if l := len(r.board); l > maxB {
			maxB = l
		}
		if l := len(r.white); l > maxW {
			maxW = l
		}
		if l := len(r.black); l > maxBl {
			maxBl = l
		}
	}

	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxB, "Board", maxW,
		"White", maxBl, "Black"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxB, r.board,
			maxW, r.white, maxBl, r.black))
	}
	sb.WriteString("\n")

	return sb.String()
}

// BuildStandingsOutput formats the snapshot's current standings into the
// aligned place table the club publishes.
func BuildStandingsOutput(t *tournament.Tournament, section string) string {
	players := append([]tournament.Player{}, t.Players...)
	sort.Slice(players, func(i, j int) bool {
		if players[i].Score != players[j].Score {
			return players[i].Score > players[j].Score
		}
		return players[i].Seed < players[j].Seed
	})

	var sb strings.Builder
	if section != "" {
		sb.WriteString(fmt.Sprintf("%s Section\n", section))
	}
	sb.WriteString(fmt.Sprintf("Standings after Round %v:\n\n",
		t.PlayedRounds))

	type row struct{ rank, player, score string }
	var rows []row
	priorScore := -1.0
	for idx, p := range players {
		var rank string
		if idx != 0 && p.Score == priorScore {
			rank = ""
		} else {
			rank = fmt.Sprintf("%v.", idx+1)
			priorScore = p.Score
		}
		rows = append(rows, row{
			rank:   rank,
			player: p.Name,
			score:  internal.ScoreToString(p.Score),
		})
	}

	// Compute column widths
	maxP, maxN, maxS := len("Place"), len("Name"), len("Score")
	for _, r := range rows {
		if l := len(r.rank); l > maxP {
			maxP = l
		}
		if l := len(r.player); l > maxN {
			maxN = l
		}
		if l := len(r.score); l > maxS {
			maxS = l
		}
	}

	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxP, "Place", maxN,
		"Name", maxS, "Score"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxP, r.rank,
			maxN, r.player, maxS, r.score))
	}
	sb.WriteString("\n")

	return sb.String()
}

func playerCell(t *tournament.Tournament, id tournament.PlayerID) string {
	p := t.Player(id)
	if p == nil {
		return fmt.Sprintf("#%d", id)
	}
	return fmt.Sprintf("%s(%d %v)", p.Name, p.Rating,
		internal.ScoreToString(p.Score))
}

// SectionSorter implements sort.Interface for custom section ordering
// Order: "Open" or "Championship" first, then U<Number> sections
// descending by number, then others lexicographically
type SectionSorter []string

func (s SectionSorter) Len() int { return len(s) }

func (s SectionSorter) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s SectionSorter) Less(i, j int) bool {
	a, b := s[i], s[j]
	if a == "Open" && b != "Open" {
		return true
	}
	if b == "Open" && a != "Open" {
		return false
	}
	if a == "Championship" && b != "Championship" {
		return true
	}
	if b == "Championship" && a != "Championship" {
		return false
	}
	ua, ub := strings.HasPrefix(a, "U"), strings.HasPrefix(b, "U")
	// Both U-sections: compare numeric suffix descending
	if ua && ub {
		ai, errA := strconv.Atoi(strings.TrimPrefix(a, "U"))
		bi, errB := strconv.Atoi(strings.TrimPrefix(b, "U"))
		if errA == nil && errB == nil {
			return ai > bi
		}
	}
	// U-sections before non-U (after Championship)
	if ua != ub {
		return ua
	}
	// Fallback lexicographical
	return a < b
}

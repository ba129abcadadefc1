/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"io"
	"strings"

	"github.com/mikeb26/swisspair/tournament"
)

// BuildChecklistOutput formats a per-player audit table for arbiters. The
// caller supplies the column headers and an annotation function producing
// one row per player; the players appear in the order given. The result is
// an aligned text table in the same style as the pairing and standings
// output.
func BuildChecklistOutput(headers []string,
	annotate func(*tournament.Player) []string,
	t *tournament.Tournament, players []tournament.PlayerID) string {

	rows := make([][]string, 0, len(players))
	for _, id := range players {
		p := t.Player(id)
		if p == nil {
			continue
		}
		row := annotate(p)
		// annotation rows narrower than the header are padded, wider ones
		// truncated, so alignment never breaks
		for len(row) < len(headers) {
			row = append(row, "")
		}
		rows = append(rows, row[:len(headers)])
	}

	// Compute column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(checklistRow(headers, widths))
	for _, row := range rows {
		sb.WriteString(checklistRow(row, widths))
	}

	return sb.String()
}

// WriteChecklist writes BuildChecklistOutput to the given sink.
func WriteChecklist(w io.Writer, headers []string,
	annotate func(*tournament.Player) []string,
	t *tournament.Tournament, players []tournament.PlayerID) error {

	_, err := io.WriteString(w,
		BuildChecklistOutput(headers, annotate, t, players))
	return err
}

func checklistRow(cells []string, widths []int) string {
	var sb strings.Builder
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString("  ")
		}
		fmt.Fprintf(&sb, "%-*s", widths[i], cell)
	}
	// trailing padding from the last column is noise
	return strings.TrimRight(sb.String(), " ") + "\n"
}

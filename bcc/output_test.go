/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"sort"
	"strings"
	"testing"

	"github.com/mikeb26/swisspair/swiss"
	"github.com/mikeb26/swisspair/tournament"
)

func outputFixture() *tournament.Tournament {
	return &tournament.Tournament{
		Name:         "Thursday Night Swiss",
		PlayedRounds: 1,
		TotalRounds:  4,
		Players: []tournament.Player{
			{ID: 1, Seed: 1, Name: "Alice Zhou", Rating: 1900, Score: 1.0},
			{ID: 2, Seed: 2, Name: "Bob Smith", Rating: 1500, Score: 0.5},
			{ID: 3, Seed: 3, Name: "Carol Jones", Rating: 1400, Score: 0.5},
			{ID: 4, Seed: 4, Name: "Dan Brown", Rating: 1200, Score: 0.0},
			{ID: 5, Seed: 5, Name: "Eve Adams", Rating: 1100, Score: 1.0},
		},
	}
}

func TestBuildPairingsOutput(t *testing.T) {
	trn := outputFixture()
	pairings := []swiss.Pairing{
		swiss.NewPairing(1, 5),
		swiss.NewPairing(3, 2),
		swiss.NewBye(4),
	}

	out := BuildPairingsOutput(trn, "Open", pairings)

	if !strings.HasPrefix(out, "Open Section\nRound 2 Pairings:\n") {
		t.Errorf("unexpected header: %q", out)
	}
	if !strings.Contains(out, "Board") || !strings.Contains(out, "White") {
		t.Errorf("missing column headers: %q", out)
	}
	if !strings.Contains(out, "1.") ||
		!strings.Contains(out, "Alice Zhou(1900 1)") {
		t.Errorf("missing first board: %q", out)
	}
	if !strings.Contains(out, "Carol Jones(1400 ½)") {
		t.Errorf("missing half-point score rendering: %q", out)
	}
	if !strings.Contains(out, "Dan Brown(1200 0)") ||
		!strings.Contains(out, "BYE(1)") {
		t.Errorf("missing bye row: %q", out)
	}
	if !strings.Contains(out, "n/a") {
		t.Errorf("bye rows carry no board number: %q", out)
	}
}

func TestBuildPairingsOutputWithoutSection(t *testing.T) {
	trn := outputFixture()
	out := BuildPairingsOutput(trn, "", nil)
	if strings.Contains(out, "Section") {
		t.Errorf("sectionless events must not print a section header: %q", out)
	}
}

func TestBuildStandingsOutput(t *testing.T) {
	trn := outputFixture()
	out := BuildStandingsOutput(trn, "Open")

	if !strings.HasPrefix(out, "Open Section\nStandings after Round 1:\n") {
		t.Errorf("unexpected header: %q", out)
	}

	// ranks repeat as blanks for tied scores
	lines := strings.Split(out, "\n")
	var aliceLine, eveLine, bobLine, carolLine string
	for _, l := range lines {
		switch {
		case strings.Contains(l, "Alice"):
			aliceLine = l
		case strings.Contains(l, "Eve"):
			eveLine = l
		case strings.Contains(l, "Bob"):
			bobLine = l
		case strings.Contains(l, "Carol"):
			carolLine = l
		}
	}
	if !strings.HasPrefix(aliceLine, "1.") {
		t.Errorf("expected Alice in first place: %q", aliceLine)
	}
	if !strings.HasPrefix(eveLine, " ") {
		t.Errorf("expected Eve's tied rank to render blank: %q", eveLine)
	}
	if !strings.HasPrefix(bobLine, "3.") {
		t.Errorf("expected Bob in third place: %q", bobLine)
	}
	if !strings.HasPrefix(carolLine, " ") {
		t.Errorf("expected Carol's tied rank to render blank: %q", carolLine)
	}
}

func TestSectionSorter(t *testing.T) {
	sections := []string{"U1200", "Reserve", "Open", "U1800", "Booster"}
	sort.Sort(SectionSorter(sections))

	expected := []string{"Open", "U1800", "U1200", "Booster", "Reserve"}
	for i := range expected {
		if sections[i] != expected[i] {
			t.Fatalf("expected order %v, got %v", expected, sections)
		}
	}
}

func TestSectionSorterChampionshipFirst(t *testing.T) {
	sections := []string{"U1600", "Championship"}
	sort.Sort(SectionSorter(sections))
	if sections[0] != "Championship" {
		t.Errorf("expected Championship first, got %v", sections)
	}
}

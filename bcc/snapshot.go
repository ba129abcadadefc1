/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/swisspair/internal"
	"github.com/mikeb26/swisspair/tournament"
	"github.com/mikeb26/swisspair/uschess"
)

// API response structures for the per-section standings endpoint, which
// vends round-by-round opponent/color outcomes:
// https://beta.boylstonchess.org/api/event/<eventId>/standings?section=<n>
type apiStandingsResponse struct {
	SectionName string            `json:"sectionName"`
	NumRounds   int               `json:"numRounds"`
	TotalRounds int               `json:"totalRounds"`
	Items       []apiStandingItem `json:"items"`
}

type apiStandingItem struct {
	PairingNumber int               `json:"pairingNumber"`
	FirstName     string            `json:"firstName"`
	LastName      string            `json:"lastName"`
	PrimaryRating int               `json:"primaryRating"`
	Score         float64           `json:"score"`
	Withdrawn     bool              `json:"withdrawn"`
	RoundOutcomes []apiRoundOutcome `json:"roundOutcomes"`
}

type apiRoundOutcome struct {
	RoundNumber           int    `json:"roundNumber"`
	Outcome               string `json:"outcome"`
	Color                 string `json:"color"`
	OpponentPairingNumber int    `json:"opponentPairingNumber"`
}

// GetSnapshots builds one pairing-engine snapshot per section for the
// given event. Sections are fetched concurrently. When the standings API
// has no data yet (registration phase) the entries page is scraped instead
// and a round-one snapshot seeded by rating is returned.
func (c *Client) GetSnapshots(ctx context.Context,
	eventID int64) (map[string]*tournament.Tournament, error) {

	detail, err := c.GetEventDetail(eventID)
	if err != nil {
		return nil, err
	}

	sections := detail.Sections
	if len(sections) == 0 {
		sections = []string{""}
	}

	var mu sync.Mutex
	snapshots := make(map[string]*tournament.Tournament)
	g, _ := errgroup.WithContext(ctx)
	for idx, name := range sections {
		g.Go(func() error {
			url := fmt.Sprintf("%v/event/%d/standings?section=%d", apiBase,
				eventID, idx)
			var standings apiStandingsResponse
			if err := c.getJSON(url, &standings); err != nil {
				return err
			}
			t, err := standingsToSnapshot(&standings, detail)
			if err != nil {
				return fmt.Errorf("section %v: %w", name, err)
			}

			mu.Lock()
			snapshots[name] = t
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// registration-phase events have no standings; fall back to the
		// entries page
		return c.getSnapshotsViaWeb(ctx, eventID, detail)
	}

	return snapshots, nil
}

// standingsToSnapshot converts one section's standings into the snapshot
// form the pairing engine consumes. Pairing numbers serve as both stable
// identity and rank.
func standingsToSnapshot(standings *apiStandingsResponse,
	detail *EventDetail) (*tournament.Tournament, error) {

	t := &tournament.Tournament{
		Name:         detail.Title,
		PlayedRounds: standings.NumRounds,
		TotalRounds:  standings.TotalRounds,
	}
	if t.TotalRounds == 0 {
		t.TotalRounds = detail.NumRounds
	}

	for _, item := range standings.Items {
		p := tournament.Player{
			ID:        tournament.PlayerID(item.PairingNumber),
			Name:      internal.NormalizeName(item.FirstName + " " + item.LastName),
			Seed:      item.PairingNumber,
			Rating:    item.PrimaryRating,
			Score:     item.Score,
			Withdrawn: item.Withdrawn,
		}

		outcomes := append([]apiRoundOutcome{}, item.RoundOutcomes...)
		sort.Slice(outcomes, func(i, j int) bool {
			return outcomes[i].RoundNumber < outcomes[j].RoundNumber
		})
		for _, outcome := range outcomes {
			p.Games = append(p.Games, outcomeToGame(outcome))
		}

		t.Players = append(t.Players, p)
	}

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("standings are not pairable: %w", err)
	}

	return t, nil
}

// outcomeToGame maps one API round outcome code onto the snapshot history
// form. Codes follow USCF crosstable conventions: W/L/D played games,
// X/F forfeits, B/H full and half byes, U unplayed.
func outcomeToGame(outcome apiRoundOutcome) tournament.Game {
	g := tournament.Game{
		Opponent: tournament.PlayerID(outcome.OpponentPairingNumber),
		Color:    convertColor(outcome.Color),
	}

	switch strings.ToUpper(outcome.Outcome) {
	case "W":
		g.Played = true
		g.Points = 1.0
	case "D":
		g.Played = true
		g.Points = 0.5
	case "L":
		g.Played = true
	case "X":
		g.Points = 1.0
	case "F":
		// loss by forfeit
	case "B":
		g.IsBye = true
		g.Points = 1.0
	case "H":
		g.IsBye = true
		g.Points = 0.5
	default:
		g.IsBye = true
	}
	// rounds without an opponent on record (byes, forfeit walkovers) carry
	// no color history and are recorded bye-style
	if g.IsBye || outcome.OpponentPairingNumber == 0 {
		g.IsBye = true
		g.Opponent = 0
		g.Color = tournament.ColorNone
	}

	return g
}

func convertColor(color string) tournament.Color {
	switch strings.ToUpper(strings.TrimSpace(color)) {
	case "W":
		return tournament.ColorWhite
	case "B":
		return tournament.ColorBlack
	}
	return tournament.ColorNone
}

// getSnapshotsViaWeb scrapes the public entries page into round-one
// snapshots, one per section, seeded by rating.
func (c *Client) getSnapshotsViaWeb(ctx context.Context, eventID int64,
	detail *EventDetail) (map[string]*tournament.Tournament, error) {

	url := fmt.Sprintf("%v/tournament/entries/%d", webBase, eventID)
	doc, err := c.fetchDoc(url)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch entries page: %w", err)
	}

	bySection := parseEntryRows(doc)
	if len(bySection) == 0 {
		return nil, fmt.Errorf("event %d has no standings and no entries",
			eventID)
	}

	snapshots := make(map[string]*tournament.Tournament)
	for name, players := range bySection {
		c.fillUnratedFromUscf(ctx, detail, players)
		// highest rated player is the top seed
		sort.Slice(players, func(i, j int) bool {
			if players[i].Rating != players[j].Rating {
				return players[i].Rating > players[j].Rating
			}
			return players[i].Name < players[j].Name
		})
		t := &tournament.Tournament{Name: detail.Title,
			TotalRounds: detail.NumRounds}
		for i := range players {
			players[i].ID = tournament.PlayerID(i + 1)
			players[i].Seed = i + 1
			t.Players = append(t.Players, players[i])
		}
		snapshots[name] = t
	}

	return snapshots, nil
}

// fillUnratedFromUscf looks up a current USCF rating for entrants the club
// has no published rating for. Lookups are best effort; a player who stays
// at rating 0 seeds at the bottom of the section.
func (c *Client) fillUnratedFromUscf(ctx context.Context, detail *EventDetail,
	players []tournament.Player) {

	memIds := make(map[string]uschess.MemID)
	for _, e := range detail.Entries {
		if e.UscfID == 0 {
			continue
		}
		name := internal.NormalizeName(e.FirstName + " " + e.LastName)
		memIds[name] = uschess.MemID(e.UscfID)
	}

	for i := range players {
		if players[i].Rating != 0 {
			continue
		}
		memID, ok := memIds[players[i].Name]
		if !ok {
			continue
		}
		profile, err := c.uscf.FetchPlayer(ctx, memID)
		if err != nil {
			continue
		}
		players[i].Rating = profile.RegRating
	}
}

// parseEntryRows extracts registered players from the entries table,
// grouped by section.
func parseEntryRows(doc *goquery.Document) map[string][]tournament.Player {
	bySection := make(map[string][]tournament.Player)

	doc.Find("table#members tbody tr").Each(func(_ int, s *goquery.Selection) {
		cells := s.Find("td")
		if cells.Length() < 4 {
			return
		}
		name := strings.TrimSpace(cells.Eq(1).Text())
		rating := 0
		if r, err := strconv.Atoi(strings.TrimSpace(cells.Eq(2).Text())); err == nil {
			rating = r
		}
		section := strings.TrimSpace(cells.Eq(3).Text())

		bySection[section] = append(bySection[section], tournament.Player{
			Name:   internal.NormalizeName(name),
			Rating: rating,
		})
	})

	return bySection
}

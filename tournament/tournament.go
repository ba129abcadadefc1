/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"encoding/json"
	"fmt"
	"io"
)

// Color identifies which pieces a player had (or wants) in a game.
type Color int

const (
	ColorWhite Color = iota
	ColorBlack
	ColorNone
)

func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "white"
	case ColorBlack:
		return "black"
	default:
		return "none"
	}
}

// Invert returns the opposite color; ColorNone inverts to itself.
func (c Color) Invert() Color {
	switch c {
	case ColorWhite:
		return ColorBlack
	case ColorBlack:
		return ColorWhite
	}
	return ColorNone
}

// PlayerID is the stable index identifying a player within a snapshot.
type PlayerID int

// Game records one round of a player's history.
type Game struct {
	Opponent PlayerID `json:"opponent"`
	Color    Color    `json:"color"`
	// Played is true only for games contested over the board; byes and
	// forfeits carry points but no color history.
	Played bool    `json:"played"`
	IsBye  bool    `json:"isBye"`
	Points float64 `json:"points"`
}

// Player is a participant in the tournament snapshot.
type Player struct {
	ID     PlayerID `json:"id"`
	Name   string   `json:"name"`
	Seed   int      `json:"seed"` // pairing number; 1 is the highest ranked
	Rating int      `json:"rating"`
	Score  float64  `json:"score"`
	// Accel is the virtual-score overlay applied by an acceleration
	// updater; it affects score-group partitioning only, never standings.
	Accel     float64 `json:"acceleration,omitempty"`
	Withdrawn bool    `json:"withdrawn,omitempty"`
	Games     []Game  `json:"games,omitempty"`
}

// VirtualScore is the score used for score-group partitioning.
func (p *Player) VirtualScore() float64 {
	return p.Score + p.Accel
}

// ColorBalance returns whites minus blacks over games played on the board.
func (p *Player) ColorBalance() int {
	bal := 0
	for _, g := range p.Games {
		if !g.Played {
			continue
		}
		switch g.Color {
		case ColorWhite:
			bal++
		case ColorBlack:
			bal--
		}
	}
	return bal
}

// LastPlayedColor returns the color of the most recent game played on the
// board, or ColorNone if there is none.
func (p *Player) LastPlayedColor() Color {
	for i := len(p.Games) - 1; i >= 0; i-- {
		if p.Games[i].Played && p.Games[i].Color != ColorNone {
			return p.Games[i].Color
		}
	}
	return ColorNone
}

// ColorPreference derives the player's due color: the color that moves the
// running balance toward equality, or the alternation of the last played
// color when the balance is already even. Players with no played games have
// no preference.
func (p *Player) ColorPreference() Color {
	bal := p.ColorBalance()
	if bal > 0 {
		return ColorBlack
	}
	if bal < 0 {
		return ColorWhite
	}
	return p.LastPlayedColor().Invert()
}

// PreferenceIsAbsolute reports whether the preference may not be denied
// without exceeding the system's maximum color imbalance.
func (p *Player) PreferenceIsAbsolute(maxImbalance int) bool {
	bal := p.ColorBalance()
	if bal < 0 {
		bal = -bal
	}
	return bal >= maxImbalance
}

// PlayedColors returns the sequence of colors from games played on the
// board, earliest round first.
func (p *Player) PlayedColors() []Color {
	var colors []Color
	for _, g := range p.Games {
		if g.Played && g.Color != ColorNone {
			colors = append(colors, g.Color)
		}
	}
	return colors
}

// MeetCount returns how many times the player has already faced opp over
// the board. Forfeits and byes are not meetings.
func (p *Player) MeetCount(opp PlayerID) int {
	n := 0
	for _, g := range p.Games {
		if g.Played && g.Opponent == opp {
			n++
		}
	}
	return n
}

// HasPlayed reports whether the player has already faced opp.
func (p *Player) HasPlayed(opp PlayerID) bool {
	return p.MeetCount(opp) > 0
}

// ByeCount returns how many byes the player has received so far.
func (p *Player) ByeCount() int {
	n := 0
	for _, g := range p.Games {
		if g.IsBye {
			n++
		}
	}
	return n
}

// Tournament is the snapshot handed to a pairing engine. The matching
// operation takes ownership of the snapshot and may overlay virtual scores
// in place; callers needing the pre-call state must keep their own copy.
type Tournament struct {
	Name         string   `json:"name,omitempty"`
	Players      []Player `json:"players"`
	PlayedRounds int      `json:"playedRounds"`
	TotalRounds  int      `json:"totalRounds,omitempty"`
}

// Player returns the player with the given id, or nil.
func (t *Tournament) Player(id PlayerID) *Player {
	for i := range t.Players {
		if t.Players[i].ID == id {
			return &t.Players[i]
		}
	}
	return nil
}

// Eligible returns the ids of players to be paired this round, in seed
// order. Withdrawn players are excluded.
func (t *Tournament) Eligible() []PlayerID {
	ids := make([]PlayerID, 0, len(t.Players))
	for i := range t.Players {
		if !t.Players[i].Withdrawn {
			ids = append(ids, t.Players[i].ID)
		}
	}
	return ids
}

// Validate checks the structural requirements external snapshot sources
// must uphold before pairing is attempted.
func (t *Tournament) Validate() error {
	seen := make(map[PlayerID]bool)
	seeds := make(map[int]bool)
	for i := range t.Players {
		p := &t.Players[i]
		if seen[p.ID] {
			return fmt.Errorf("duplicate player id %v", p.ID)
		}
		seen[p.ID] = true
		if p.Seed <= 0 {
			return fmt.Errorf("player %v has invalid seed %v", p.ID, p.Seed)
		}
		if seeds[p.Seed] {
			return fmt.Errorf("duplicate seed %v", p.Seed)
		}
		seeds[p.Seed] = true
		if len(p.Games) > t.PlayedRounds {
			return fmt.Errorf("player %v has %v games but only %v rounds played",
				p.ID, len(p.Games), t.PlayedRounds)
		}
	}
	for i := range t.Players {
		for _, g := range t.Players[i].Games {
			if !g.IsBye && !seen[g.Opponent] {
				return fmt.Errorf("player %v played unknown opponent %v",
					t.Players[i].ID, g.Opponent)
			}
		}
	}
	return nil
}

// Load reads a snapshot in its JSON transport form.
func Load(r io.Reader) (*Tournament, error) {
	var t Tournament
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("unable to parse tournament snapshot: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tournament snapshot: %w", err)
	}
	return &t, nil
}

// Save writes the snapshot in its JSON transport form.
func (t *Tournament) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("unable to write tournament snapshot: %w", err)
	}
	return nil
}

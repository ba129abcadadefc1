/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package swiss computes the pairings for one round of a Swiss-system
// tournament from a snapshot of scores and per-round opponent/color history.
// Each supported system is a stateless capability object retrieved from a
// read-only registry; the matching operation is deterministic for a given
// snapshot and system.
package swiss

import (
	"io"
	"strings"

	"github.com/mikeb26/swisspair/tournament"
)

// System selects which Swiss-system variant computes the pairings.
type System int

const (
	SystemNone System = iota
	SystemBurstein
	SystemDutch
)

func (s System) String() string {
	switch s {
	case SystemBurstein:
		return "burstein"
	case SystemDutch:
		return "dutch"
	default:
		return "none"
	}
}

// SystemFromString maps a configuration string to a System selector.
// Unrecognized values map to SystemNone, the invalid-configuration
// placeholder.
func SystemFromString(s string) System {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "burstein":
		return SystemBurstein
	case "dutch":
		return SystemDutch
	}
	return SystemNone
}

// Pairing assigns two players to play each other along with their colors,
// or designates a single player's bye. Pairings are value objects; the
// engine creates them once per round and never mutates them after return.
type Pairing struct {
	White tournament.PlayerID `json:"white"`
	Black tournament.PlayerID `json:"black"`
	Bye   bool                `json:"bye,omitempty"`
}

// NewPairing constructs a pairing with colors already resolved.
func NewPairing(white, black tournament.PlayerID) Pairing {
	return Pairing{White: white, Black: black}
}

// NewPairingWithColor constructs a pairing from an unordered pair plus the
// color resolved for p0. Used when colors are allocated after pair
// selection.
func NewPairingWithColor(p0, p1 tournament.PlayerID,
	p0color tournament.Color) Pairing {

	if p0color == tournament.ColorWhite {
		return Pairing{White: p0, Black: p1}
	}
	return Pairing{White: p1, Black: p0}
}

// NewBye constructs a bye pairing. The byed player is carried in the White
// slot; Black mirrors it so the record has no second identity.
func NewBye(p tournament.PlayerID) Pairing {
	return Pairing{White: p, Black: p, Bye: true}
}

// Players returns the identities appearing in the pairing; one identity for
// a bye.
func (p Pairing) Players() []tournament.PlayerID {
	if p.Bye {
		return []tournament.PlayerID{p.White}
	}
	return []tournament.PlayerID{p.White, p.Black}
}

// Info is the capability object for one Swiss-system variant.
//
// ComputeMatching consumes the snapshot (the engine may overlay virtual
// scores in place) and returns the round's pairings, writing an audit trail
// of the bracket-by-bracket search to checklist when it is non-nil. It
// fails with a NoValidPairingError when no pairing satisfies the system's
// mandatory constraints.
//
// UpdateAccelerations assigns virtual-score bonuses for the next round,
// assuming the system defines a default acceleration table; otherwise it
// fails with an UnsupportedFeatureError.
type Info interface {
	ComputeMatching(t *tournament.Tournament, checklist io.Writer) ([]Pairing, error)
	UpdateAccelerations(t *tournament.Tournament) error
}

// registry is populated once here and never mutated afterward, so lookups
// are safe from any goroutine.
var registry = map[System]Info{
	SystemNone:     noneInfo{},
	SystemBurstein: bursteinInfo{},
	SystemDutch:    dutchInfo{},
}

// GetInfo retrieves the capability object for the given system. Every
// System value has an entry; passing an out-of-range selector is a caller
// bug and returns the SystemNone placeholder.
func GetInfo(s System) Info {
	info, ok := registry[s]
	if !ok {
		return registry[SystemNone]
	}
	return info
}

/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"io"

	"github.com/mikeb26/swisspair/tournament"
)

// noneInfo is the placeholder capability for an unconfigured or
// unrecognized system selector. Every operation fails; it exists so
// misconfiguration surfaces as a distinct, immediate error rather than a
// pairing attempt under the wrong rules.
type noneInfo struct{}

func (noneInfo) ComputeMatching(t *tournament.Tournament,
	checklist io.Writer) ([]Pairing, error) {

	return nil, &UnsupportedFeatureError{
		System:  SystemNone,
		Feature: "computing pairings",
	}
}

func (noneInfo) UpdateAccelerations(t *tournament.Tournament) error {
	return &UnsupportedFeatureError{
		System:  SystemNone,
		Feature: "a default acceleration system",
	}
}

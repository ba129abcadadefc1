/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"io"

	"github.com/mikeb26/swisspair/tournament"
)

// dutchInfo implements the Dutch baseline variant: no rematch is ever
// permitted and no default acceleration table is defined.
type dutchInfo struct{}

var dutchRules = rules{
	system:            SystemDutch,
	maxColorImbalance: 2,
	maxMeetings:       1,
	allowRematch:      false,
}

func (dutchInfo) ComputeMatching(t *tournament.Tournament,
	checklist io.Writer) ([]Pairing, error) {

	return computeMatching(t, dutchRules, checklist)
}

func (dutchInfo) UpdateAccelerations(t *tournament.Tournament) error {
	return &UnsupportedFeatureError{
		System:  SystemDutch,
		Feature: "a default acceleration system",
	}
}

/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"github.com/mikeb26/swisspair/tournament"
)

// ColorPreferencesAreCompatible checks whether two players can play each
// other under the normal restrictions imposed on all Swiss systems: the
// preferences clash only when both are explicit and equal.
func ColorPreferencesAreCompatible(pref0, pref1 tournament.Color) bool {
	return pref0 != pref1 ||
		pref0 == tournament.ColorNone ||
		pref1 == tournament.ColorNone
}

// FindFirstColorDifference walks both players' played-color histories from
// the earliest round forward and returns the colors at the first round
// where they differ. When one history is a strict prefix of the other, or
// the histories are identical, no divergence exists and both results are
// ColorNone; callers fall through to their own deterministic tie-break.
func FindFirstColorDifference(p0, p1 *tournament.Player) (tournament.Color,
	tournament.Color) {

	colors0 := p0.PlayedColors()
	colors1 := p1.PlayedColors()
	n := len(colors0)
	if len(colors1) < n {
		n = len(colors1)
	}
	for i := 0; i < n; i++ {
		if colors0[i] != colors1[i] {
			return colors0[i], colors1[i]
		}
	}

	return tournament.ColorNone, tournament.ColorNone
}

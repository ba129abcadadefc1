/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// ScoreToString renders a chess score using the conventional unicode half
// point, e.g. 2.5 becomes "2½" and 1.0 becomes "1".
func ScoreToString(score float64) string {
	whole := int(score)
	if score-float64(whole) >= 0.5 {
		if whole == 0 {
			return "½"
		}
		return fmt.Sprintf("%d½", whole)
	}
	return fmt.Sprintf("%d", whole)
}

// NormalizeName title-cases a "First [Middle] Last" name down to just
// "First Last".
func NormalizeName(s string) string {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return ""
	}
	first := titleCase(parts[0])
	last := first
	if len(parts) > 1 {
		last = titleCase(parts[len(parts)-1])
	}
	if first == last {
		return first
	}
	return first + " " + last
}

func titleCase(s string) string {
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

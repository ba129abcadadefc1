/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import "fmt"

// NoValidPairingError indicates that no pairing satisfies the requirements
// imposed by the system, even after exhausting backtracking and every
// relaxation the system permits. It is terminal for the round; the remedy
// is operator intervention, not retry.
type NoValidPairingError struct {
	Reason string
}

func (e *NoValidPairingError) Error() string {
	if e.Reason == "" {
		return "no valid pairing exists for this round"
	}
	return fmt.Sprintf("no valid pairing exists for this round: %v", e.Reason)
}

// UnsupportedFeatureError indicates that the chosen Swiss system does not
// support a requested capability, for example a default acceleration
// table. It is a configuration error, distinct from NoValidPairingError;
// the remedy is choosing a different system or feature, not adjusting
// tournament data.
type UnsupportedFeatureError struct {
	System  System
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("the %v system does not support %v", e.System,
		e.Feature)
}

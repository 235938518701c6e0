// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"fmt"
	"math"
)

const (
	// GuessesPerSecond is the assumed rate of an offline attack on a fast hash.
	GuessesPerSecond = 1e10

	minute = 60
	hour   = 3600
	day    = 86400
	month  = 30 * day
	year   = 365 * day

	millionYears = 1_000_000
)

// CrackTime estimates the average time needed to find a password with the given entropy,
// assuming half the keyspace has to be searched at GuessesPerSecond.
func CrackTime(entropy float64) string {
	seconds := math.Pow(2, entropy) / (2 * GuessesPerSecond)

	switch {
	case seconds < 1:
		return "Instant"
	case seconds < minute:
		return fmt.Sprintf("%d seconds", int64(seconds))
	case seconds < hour:
		return fmt.Sprintf("%d minutes", int64(seconds/minute))
	case seconds < day:
		return fmt.Sprintf("%d hours", int64(seconds/hour))
	case seconds < month:
		return fmt.Sprintf("%d days", int64(seconds/day))
	case seconds < year:
		return fmt.Sprintf("%d months", int64(seconds/month))
	}

	// Compared as a float, 2^entropy overflows to +Inf for very long passwords.
	years := math.Floor(seconds / year)
	if years > millionYears {
		return "Millions of years"
	}

	return fmt.Sprintf("%d years", int64(years))
}

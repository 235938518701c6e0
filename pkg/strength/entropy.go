// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"math"
	"unicode"
	"unicode/utf8"
)

const (
	lowerPoolSize = 26
	upperPoolSize = 26
	digitPoolSize = 10
	// Assumed size of the symbol alphabet, regardless of how many symbols are used.
	otherPoolSize = 32
)

// Entropy estimates the entropy in bits of a password as length * log2(pool), where the pool is
// the sum of the sizes of every character class present in the password.
//
// This is an upper bound of the keyspace a brute force attack would need to cover, not the
// Shannon entropy of the actual string. "aaaaaaaa" and "qzmxnwbv" estimate the same.
func Entropy(password string) float64 {
	pool := poolSize(password)
	if pool == 0 {
		return 0
	}

	return float64(utf8.RuneCountInString(password)) * math.Log2(float64(pool))
}

func poolSize(password string) int {
	var lower, upper, digit, other bool
	for _, r := range password {
		switch {
		case isLower(r):
			lower = true
		case isUpper(r):
			upper = true
		case isDigit(r):
			digit = true
		default:
			// Non ASCII decimal digits count as digits and as symbols.
			other = true
			digit = digit || unicode.IsDigit(r)
		}
	}

	pool := 0
	if lower {
		pool += lowerPoolSize
	}
	if upper {
		pool += upperPoolSize
	}
	if digit {
		pool += digitPoolSize
	}
	if other {
		pool += otherPoolSize
	}

	return pool
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntropy(t *testing.T) {
	cases := []struct {
		password string
		pool     float64
	}{
		{"abcdefgh", 26},
		{"ABCDEFGH", 26},
		{"12345678", 10},
		{"!!!!", 32},
		{"aB", 52},
		{"aB3", 62},
		{"aB3$", 94},
		// non ASCII letters count towards the symbol class
		{"ñ", 32},
		// non ASCII digits count towards both the digit and the symbol classes
		{"١٢٣٤٥٦٧٨", 42},
		{"1١", 42},
		{"a b", 58},
	}

	for _, tc := range cases {
		want := float64(len([]rune(tc.password))) * math.Log2(tc.pool)
		assert.InDelta(t, want, Entropy(tc.password), 1e-9, tc.password)
	}
}

func TestEntropy_Empty(t *testing.T) {
	assert.Equal(t, float64(0), Entropy(""))
}

func TestEntropy_MonotonicInLength(t *testing.T) {
	prev := 0.0
	for i := 1; i <= 64; i++ {
		e := Entropy(strings.Repeat("aZ9#", i))
		assert.GreaterOrEqual(t, e, prev)
		prev = e
	}
}

func TestCrackTime(t *testing.T) {
	entropyFor := func(seconds float64) float64 {
		return math.Log2(seconds * 2 * GuessesPerSecond)
	}

	cases := []struct {
		entropy float64
		want    string
	}{
		{0, "Instant"},
		{entropyFor(0.5), "Instant"},
		{entropyFor(1.5), "1 seconds"},
		{entropyFor(30.5), "30 seconds"},
		{entropyFor(150), "2 minutes"},
		{entropyFor(7300), "2 hours"},
		{entropyFor(3.5 * day), "3 days"},
		{entropyFor(2.5 * month), "2 months"},
		{entropyFor(10.5 * year), "10 years"},
		{entropyFor(999_999.5 * year), "999999 years"},
		{entropyFor(2_000_000 * year), "Millions of years"},
		// 2^2000 is +Inf as a float64
		{2000, "Millions of years"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CrackTime(tc.entropy), "entropy %f", tc.entropy)
	}
}

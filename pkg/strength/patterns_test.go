// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetector(t *testing.T) {
	d := NewDetector(DefaultLists())

	cases := []struct {
		name  string
		check func(string) bool
		in    string
		want  bool
	}{
		{"common", d.IsCommonPassword, "password", true},
		{"common case", d.IsCommonPassword, "PaSsWoRd", true},
		{"common exact only", d.IsCommonPassword, "password1", false},
		{"pattern", d.HasCommonPatterns, "myADMINaccount", true},
		{"pattern digits", d.HasCommonPatterns, "x123x", true},
		{"no pattern", d.HasCommonPatterns, "Zq7/Zq7/", false},
		{"keyboard", d.HasKeyboardPatterns, "xxZXCVBNMxx", true},
		{"keyboard column", d.HasKeyboardPatterns, "1QAZ2WSX", true},
		{"no keyboard", d.HasKeyboardPatterns, "qwer", false},
		{"repetition", d.HasRepetitions, "abbbc", true},
		{"repetition symbols", d.HasRepetitions, "!!!", true},
		{"repetition is case sensitive", d.HasRepetitions, "aAa", false},
		{"two is fine", d.HasRepetitions, "aabbcc", false},
		{"newlines do not repeat", d.HasRepetitions, "\n\n\n", false},
		{"sequential", d.HasSequentialChars, "xxXYZxx", true},
		{"sequential reversed", d.HasSequentialChars, "x987", true},
		{"sequential reversed letters", d.HasSequentialChars, "CBA", true},
		{"no sequential", d.HasSequentialChars, "acegik", false},
		{"not wrapping", d.HasSequentialChars, "yza", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.check(tc.in))
		})
	}
}

func TestDetector_Fixtures(t *testing.T) {
	d := NewDetector(Lists{
		CommonPatterns:   []string{"Foo"},
		KeyboardPatterns: []string{"hjkl"},
		Sequences:        []string{"xyz"},
	})

	assert.True(t, d.HasCommonPatterns("AFOOB"))
	assert.False(t, d.HasCommonPatterns("123"))
	assert.True(t, d.HasKeyboardPatterns("vimHJKL"))
	assert.True(t, d.HasSequentialChars("zyx"))
	assert.False(t, d.HasSequentialChars("abc"))
	assert.False(t, d.IsCommonPassword("password"))
}

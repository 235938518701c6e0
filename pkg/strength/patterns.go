// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"strings"
)

// Lists holds the fixed word lists used by the pattern checks. Matching is case-insensitive,
// entries are lower-cased when a Detector is built.
type Lists struct {
	// CommonPasswords are matched against the whole password.
	CommonPasswords []string
	// CommonPatterns are short tokens matched anywhere in the password.
	CommonPatterns []string
	// KeyboardPatterns are runs of physically adjacent keys matched anywhere in the password.
	KeyboardPatterns []string
	// Sequences are ordered alphabets. Any 3 character window, forward or reversed, is a match.
	Sequences []string
}

// DefaultLists returns the stock lists.
func DefaultLists() Lists {
	return Lists{
		CommonPasswords: []string{
			"password", "123456", "12345678", "qwerty", "abc123",
			"monkey", "1234567", "letmein", "trustno1", "dragon",
			"baseball", "iloveyou", "master", "sunshine", "ashley",
			"bailey", "passw0rd", "shadow", "123123", "654321",
			"superman", "qazwsx", "michael", "football",
		},
		CommonPatterns: []string{
			"123", "abc", "qwerty", "asdf", "zxcv",
			"password", "pass", "admin", "user", "login",
		},
		KeyboardPatterns: []string{
			"qwertyuiop", "asdfghjkl", "zxcvbnm",
			"1qaz2wsx", "qweasd", "zaqwsx",
		},
		Sequences: []string{
			"0123456789",
			"abcdefghijklmnopqrstuvwxyz",
		},
	}
}

const sequenceRun = 3

// Detector runs the heuristic pattern checks. It is immutable once built and safe for
// concurrent use.
type Detector struct {
	common   map[string]struct{}
	patterns []string
	keyboard []string
	// every forward and reversed window of every sequence
	runs []string
}

func NewDetector(lists Lists) *Detector {
	d := &Detector{
		common:   make(map[string]struct{}, len(lists.CommonPasswords)),
		patterns: lowerAll(lists.CommonPatterns),
		keyboard: lowerAll(lists.KeyboardPatterns),
	}

	for _, p := range lists.CommonPasswords {
		d.common[strings.ToLower(p)] = struct{}{}
	}

	for _, seq := range lowerAll(lists.Sequences) {
		runes := []rune(seq)
		for i := 0; i+sequenceRun <= len(runes); i++ {
			window := runes[i : i+sequenceRun]
			d.runs = append(d.runs, string(window), reverse(window))
		}
	}

	return d
}

// IsCommonPassword reports whether the password is on the common passwords list.
func (d *Detector) IsCommonPassword(password string) bool {
	_, ok := d.common[strings.ToLower(password)]
	return ok
}

// HasCommonPatterns reports whether the password contains a common token like "123" or "admin".
func (d *Detector) HasCommonPatterns(password string) bool {
	return containsAny(strings.ToLower(password), d.patterns)
}

// HasKeyboardPatterns reports whether the password contains a run of adjacent keys.
func (d *Detector) HasKeyboardPatterns(password string) bool {
	return containsAny(strings.ToLower(password), d.keyboard)
}

// HasRepetitions reports whether any character appears 3 or more times in a row. Line breaks
// never count as a repeated character.
func (d *Detector) HasRepetitions(password string) bool {
	var last rune
	count := 0
	for _, r := range password {
		if r == '\n' {
			count = 0
			continue
		}

		if count > 0 && r == last {
			count++
		} else {
			last = r
			count = 1
		}

		if count >= sequenceRun {
			return true
		}
	}

	return false
}

// HasSequentialChars reports whether the password contains 3 consecutive characters of a
// sequence, like "abc", "789" or "cba".
func (d *Detector) HasSequentialChars(password string) bool {
	return containsAny(strings.ToLower(password), d.runs)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		out = append(out, strings.ToLower(s))
	}

	return out
}

func reverse(runes []rune) string {
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[len(runes)-1-i] = r
	}

	return string(out)
}

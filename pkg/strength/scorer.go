// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

// Package strength scores how hard a password is to guess with a set of fixed heuristics:
// length, character diversity and penalties for well known weak patterns. It also estimates
// the password entropy and the time needed to brute force it.
package strength

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tier is the qualitative strength of a password.
type Tier string

const (
	TierEmpty    Tier = "Empty"
	TierVeryWeak Tier = "Very Weak"
	TierWeak     Tier = "Weak"
	TierMedium   Tier = "Medium"
	TierStrong   Tier = "Strong"
)

// MaxScore is the best score a password can get: 3 points for length and 4 for diversity.
// Penalties only subtract.
const MaxScore = 7

const (
	commonPasswordPenalty = 2
	patternPenalty        = 1

	specialChars = "!@#$%^&*()_+-=[]{};:'\",.<>?/\\|`~"
)

// Report is the result of a strength check.
type Report struct {
	Score      int      `json:"score"`
	MaxScore   int      `json:"max_score"`
	Strength   Tier     `json:"strength"`
	Percentage int      `json:"percentage"`
	Feedback   []string `json:"feedback"`
	Entropy    float64  `json:"entropy"`
	CrackTime  string   `json:"crack_time"`
	Length     int      `json:"length"`
}

// Scorer checks password strength. It holds no state besides its Detector and can be shared.
type Scorer struct {
	detector *Detector
}

func NewScorer(lists Lists) *Scorer {
	return &Scorer{detector: NewDetector(lists)}
}

// NewDefaultScorer returns a Scorer using DefaultLists.
func NewDefaultScorer() *Scorer {
	return NewScorer(DefaultLists())
}

// Detector returns the pattern detector used by the scorer.
func (s *Scorer) Detector() *Detector {
	return s.detector
}

// Check scores the password. It never fails, an empty password gets the Empty tier.
func (s *Scorer) Check(password string) Report {
	if password == "" {
		return Report{
			Score:     0,
			MaxScore:  MaxScore,
			Strength:  TierEmpty,
			Feedback:  []string{"Please enter a password"},
			Entropy:   0,
			CrackTime: "Instant",
		}
	}

	var feedback []string

	length := utf8.RuneCountInString(password)
	score, msg := lengthScore(length)
	feedback = append(feedback, msg)

	diversity, missing := diversityScore(password)
	score += diversity
	feedback = append(feedback, missing...)

	d := s.detector
	if d.IsCommonPassword(password) {
		score -= commonPasswordPenalty
		feedback = append(feedback, "This is a commonly used password")
	}
	if d.HasCommonPatterns(password) {
		score -= patternPenalty
		feedback = append(feedback, "Contains common patterns (123, abc, etc.)")
	}
	if d.HasKeyboardPatterns(password) {
		score -= patternPenalty
		feedback = append(feedback, "Contains keyboard patterns (qwerty, asdf, etc.)")
	}
	if d.HasRepetitions(password) {
		score -= patternPenalty
		feedback = append(feedback, "Contains repetitive characters")
	}
	if d.HasSequentialChars(password) {
		score -= patternPenalty
		feedback = append(feedback, "Contains sequential characters")
	}

	// Clamped once, after every addition and penalty.
	score = clamp(score, 0, MaxScore)

	switch {
	case score >= 6:
		feedback = append([]string{"Excellent password strength!"}, feedback...)
	case score >= 4:
		feedback = append([]string{"Good password strength"}, feedback...)
	}

	entropy := Entropy(password)
	percentage := percentOf(score)

	return Report{
		Score:      score,
		MaxScore:   MaxScore,
		Strength:   tierFor(percentage),
		Percentage: percentage,
		Feedback:   feedback,
		Entropy:    math.Round(entropy*100) / 100,
		CrackTime:  CrackTime(entropy),
		Length:     length,
	}
}

func lengthScore(length int) (int, string) {
	switch {
	case length < 8:
		return 0, "Too short (minimum 8 characters)"
	case length < 12:
		return 1, "Consider using 12+ characters"
	case length < 16:
		return 2, "Good length"
	default:
		return 3, "Excellent length"
	}
}

// diversityScore gives one point per character class present, and a suggestion for each
// missing class.
func diversityScore(password string) (int, []string) {
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case isLower(r):
			lower = true
		case isUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}

	score := 0
	var missing []string
	for _, class := range []struct {
		present bool
		hint    string
	}{
		{lower, "Add lowercase letters (a-z)"},
		{upper, "Add uppercase letters (A-Z)"},
		{digit, "Add numbers (0-9)"},
		{special, "Add special characters (!@#$%...)"},
	} {
		if class.present {
			score++
		} else {
			missing = append(missing, class.hint)
		}
	}

	return score, missing
}

func percentOf(score int) int {
	return 100 * score / MaxScore
}

func tierFor(percentage int) Tier {
	switch {
	case percentage < 30:
		return TierVeryWeak
	case percentage < 55:
		return TierWeak
	case percentage < 80:
		return TierMedium
	default:
		return TierStrong
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package generator

import (
	"fmt"
	"strconv"
	"strings"
)

var words = []string{
	"rainbow", "mountain", "sunset", "ocean", "forest", "thunder",
	"crystal", "shadow", "phoenix", "dragon", "wizard", "castle",
	"knight", "legend", "mystic", "storm", "silver", "golden",
	"tiger", "eagle", "wolf", "bear", "lion", "hawk",
	"river", "valley", "meadow", "glacier", "volcano", "canyon",
	"anchor", "compass", "journey", "voyage", "atlas", "cosmos",
	"nebula", "quantum", "prism", "eclipse", "zenith", "aurora",
}

// PassphraseOptions shapes a generated passphrase.
type PassphraseOptions struct {
	WordCount  int
	Separator  string
	Capitalize bool
	// AddNumber appends a 3 digit number as the last element.
	AddNumber bool
}

func DefaultPassphraseOptions() PassphraseOptions {
	return PassphraseOptions{WordCount: 4, Separator: "-", Capitalize: true, AddNumber: true}
}

// MaxWords is the size of the word list. Words are never repeated within a passphrase.
func MaxWords() int {
	return len(words)
}

// Passphrase generates a passphrase of distinct random words.
func Passphrase(opts PassphraseOptions) (string, error) {
	if opts.WordCount < 1 || opts.WordCount > len(words) {
		return "", fmt.Errorf("Word count must be between 1 and %d", len(words))
	}

	// partial Fisher-Yates over a copy, drawing without replacement
	pool := make([]string, len(words))
	copy(pool, words)

	selected := make([]string, 0, opts.WordCount+1)
	for i := 0; i < opts.WordCount; i++ {
		j, err := randInt(len(pool) - i)
		if err != nil {
			return "", err
		}
		j += i
		pool[i], pool[j] = pool[j], pool[i]

		word := pool[i]
		if opts.Capitalize {
			word = strings.ToUpper(word[:1]) + word[1:]
		}
		selected = append(selected, word)
	}

	if opts.AddNumber {
		n, err := randInt(900)
		if err != nil {
			return "", err
		}
		selected = append(selected, strconv.Itoa(100+n))
	}

	return strings.Join(selected, opts.Separator), nil
}

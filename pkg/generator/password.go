// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

// Package generator creates random passwords and passphrases from crypto/rand.
package generator

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"
	special   = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	MinLength = 4
	MaxLength = 1024
)

var (
	ErrLengthTooShort = errors.New("Password length must be at least 4 characters")
	ErrLengthTooLong  = fmt.Errorf("Password length must be at most %d characters", MaxLength)
	ErrNoCharacterSet = errors.New("At least one character type must be selected")
)

// Options selects the character classes of a generated password.
type Options struct {
	Length    int
	Lowercase bool
	Uppercase bool
	Digits    bool
	Special   bool
	// ExcludeAmbiguous drops characters that are easy to confuse: l, o, I, O, 0 and 1.
	ExcludeAmbiguous bool
}

// DefaultOptions is a 16 character password using every class.
func DefaultOptions() Options {
	return Options{Length: 16, Lowercase: true, Uppercase: true, Digits: true, Special: true}
}

// Password generates a random password. Every selected class appears at least once.
func Password(opts Options) (string, error) {
	if opts.Length < MinLength {
		return "", ErrLengthTooShort
	}
	if opts.Length > MaxLength {
		return "", ErrLengthTooLong
	}

	var classes []string
	if opts.Lowercase {
		classes = append(classes, without(lowercase, opts.ExcludeAmbiguous, "lo"))
	}
	if opts.Uppercase {
		classes = append(classes, without(uppercase, opts.ExcludeAmbiguous, "IO"))
	}
	if opts.Digits {
		classes = append(classes, without(digits, opts.ExcludeAmbiguous, "01"))
	}
	if opts.Special {
		classes = append(classes, special)
	}

	if len(classes) == 0 {
		return "", ErrNoCharacterSet
	}

	pool := strings.Join(classes, "")
	out := make([]byte, 0, opts.Length)
	for _, class := range classes {
		c, err := pick(class)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	for len(out) < opts.Length {
		c, err := pick(pool)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	if err := shuffle(out); err != nil {
		return "", err
	}

	return string(out), nil
}

func without(chars string, exclude bool, ambiguous string) string {
	if !exclude {
		return chars
	}

	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(ambiguous, r) {
			return -1
		}
		return r
	}, chars)
}

// randInt returns a uniform random int in [0, n).
func randInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}

	return int(v.Int64()), nil
}

func pick(chars string) (byte, error) {
	i, err := randInt(len(chars))
	if err != nil {
		return 0, err
	}

	return chars[i], nil
}

// shuffle is a Fisher-Yates shuffle, so the required characters are not always first.
func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := randInt(i + 1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}

	return nil
}

// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package generator

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	for i := 0; i < 50; i++ {
		p, err := Password(DefaultOptions())
		require.NoError(t, err)
		assert.Len(t, p, 16)
		assert.True(t, strings.ContainsAny(p, lowercase), p)
		assert.True(t, strings.ContainsAny(p, uppercase), p)
		assert.True(t, strings.ContainsAny(p, digits), p)
		assert.True(t, strings.ContainsAny(p, special), p)
	}
}

func TestPassword_MinimumLength(t *testing.T) {
	// 4 characters, one per class
	p, err := Password(Options{Length: 4, Lowercase: true, Uppercase: true, Digits: true, Special: true})
	require.NoError(t, err)
	assert.Len(t, p, 4)
	assert.True(t, strings.ContainsAny(p, lowercase))
	assert.True(t, strings.ContainsAny(p, uppercase))
	assert.True(t, strings.ContainsAny(p, digits))
	assert.True(t, strings.ContainsAny(p, special))
}

func TestPassword_SingleClass(t *testing.T) {
	p, err := Password(Options{Length: 32, Digits: true})
	require.NoError(t, err)
	for _, r := range p {
		assert.Contains(t, digits, string(r))
	}
}

func TestPassword_ExcludeAmbiguous(t *testing.T) {
	opts := Options{Length: 256, Lowercase: true, Uppercase: true, Digits: true, ExcludeAmbiguous: true}
	for i := 0; i < 10; i++ {
		p, err := Password(opts)
		require.NoError(t, err)
		assert.False(t, strings.ContainsAny(p, "loIO01"), p)
	}
}

func TestPassword_Errors(t *testing.T) {
	_, err := Password(Options{Length: 3, Lowercase: true})
	assert.ErrorIs(t, err, ErrLengthTooShort)
	assert.EqualError(t, err, "Password length must be at least 4 characters")

	_, err = Password(Options{Length: MaxLength + 1, Lowercase: true})
	assert.ErrorIs(t, err, ErrLengthTooLong)

	_, err = Password(Options{Length: 16})
	assert.ErrorIs(t, err, ErrNoCharacterSet)
	assert.EqualError(t, err, "At least one character type must be selected")
}

func TestPassphrase(t *testing.T) {
	p, err := Passphrase(DefaultPassphraseOptions())
	require.NoError(t, err)

	parts := strings.Split(p, "-")
	require.Len(t, parts, 5)

	seen := map[string]bool{}
	for _, w := range parts[:4] {
		assert.Equal(t, strings.ToUpper(w[:1]), w[:1])
		assert.Contains(t, words, strings.ToLower(w))
		assert.False(t, seen[w], "words are drawn without replacement")
		seen[w] = true
	}

	n, err := strconv.Atoi(parts[4])
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 100)
	assert.LessOrEqual(t, n, 999)
}

func TestPassphrase_AllWords(t *testing.T) {
	p, err := Passphrase(PassphraseOptions{WordCount: MaxWords(), Separator: " "})
	require.NoError(t, err)

	parts := strings.Split(p, " ")
	assert.ElementsMatch(t, words, parts)
}

func TestPassphrase_Errors(t *testing.T) {
	_, err := Passphrase(PassphraseOptions{WordCount: 0})
	assert.Error(t, err)

	_, err = Passphrase(PassphraseOptions{WordCount: MaxWords() + 1})
	assert.Error(t, err)
}

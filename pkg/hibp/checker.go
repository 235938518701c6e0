// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

// Package hibp checks passwords against the Pwned Passwords corpus with the k-anonymity range
// protocol: only the first 5 characters of the SHA1 hash of a password leave the process, the
// match against the rest of the hash is done locally.
package hibp

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Severity classifies how exposed a password is.
type Severity string

const (
	SeveritySafe     Severity = "safe"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// SeverityFor returns the severity of a password seen count times in breaches.
func SeverityFor(count int64) Severity {
	switch {
	case count <= 0:
		return SeveritySafe
	case count > 100000:
		return SeverityCritical
	case count > 10000:
		return SeverityHigh
	case count > 1000:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

const prefixLen = 5

const (
	msgNoPassword  = "No password provided"
	msgInvalidHash = "input is not a valid SHA1 Hexadecimal hash"
	msgTimeout     = "Request timeout. Please try again."
	msgConnection  = "Connection error. Check your internet connection."
	msgNotBreached = "Good news! This password was not found in known data breaches."
)

// Report is the result of a breach check. Breached, Count, Severity and Message are only set
// when Checked is true; Error is only set when it is false.
type Report struct {
	Checked  bool     `json:"checked"`
	Breached *bool    `json:"breached,omitempty"`
	Count    *int64   `json:"count,omitempty"`
	Severity Severity `json:"severity,omitempty"`
	Message  string   `json:"message,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// IsBreached is a nil safe accessor for Breached.
func (r Report) IsBreached() bool {
	return r.Breached != nil && *r.Breached
}

func failed(msg string) Report {
	return Report{Checked: false, Error: msg}
}

func found(count int64) Report {
	if count < 0 {
		count = 0
	}
	breached := count > 0
	r := Report{
		Checked:  true,
		Breached: &breached,
		Count:    &count,
		Severity: SeverityFor(count),
	}

	if breached {
		p := message.NewPrinter(language.English)
		r.Message = p.Sprintf("WARNING: This password has been exposed %d times in data breaches!", count)
	} else {
		r.Message = msgNotBreached
	}

	return r
}

var hashRegex = regexp.MustCompile("^[a-fA-F\\d]{40}$")

// ValidHash reports whether s is a hexadecimal SHA1 hash, in any case.
func ValidHash(s string) bool {
	return hashRegex.MatchString(s)
}

// HashPassword returns the uppercase hexadecimal SHA1 hash of the UTF-8 password.
func HashPassword(password string) string {
	sum := sha1.Sum([]byte(password))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// Checker checks passwords against a RangeSource. It holds no per call state and is safe for
// concurrent use.
type Checker struct {
	source  RangeSource
	timeout time.Duration
}

// NewChecker creates a Checker. Every lookup is bounded by timeout, DefaultTimeout when not
// positive.
func NewChecker(source RangeSource, timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Checker{source: source, timeout: timeout}
}

// Check looks up the password. It always returns a report, failures are reported with
// Checked set to false.
func (c *Checker) Check(ctx context.Context, password string) Report {
	if password == "" {
		return failed(msgNoPassword)
	}

	return c.lookup(ctx, HashPassword(password))
}

// CheckHash looks up an already computed SHA1 hash, for callers that do not want to hand over
// the password at all.
func (c *Checker) CheckHash(ctx context.Context, hash string) Report {
	if !ValidHash(hash) {
		return failed(msgInvalidHash)
	}

	return c.lookup(ctx, strings.ToUpper(hash))
}

func (c *Checker) lookup(ctx context.Context, hash string) (report Report) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("recovered from panic during breach lookup: %v", r)
			report = failed(fmt.Sprintf("Unexpected error: %v", r))
		}
	}()

	prefix, suffix := hash[:prefixLen], hash[prefixLen:]

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := c.source.Range(ctx, prefix)
	if err != nil {
		log.Debug().Err(err).Str("range", prefix).Msg("range lookup failed")
		return failedLookup(err)
	}

	count, err := findSuffix(body, suffix)
	if err != nil {
		return failed(fmt.Sprintf("Unexpected error: %s", err))
	}

	return found(count)
}

func failedLookup(err error) Report {
	err = classify(err)

	var statusErr *StatusError
	switch {
	case errors.Is(err, ErrTimeout):
		return failed(msgTimeout)
	case errors.As(err, &statusErr):
		return failed(fmt.Sprintf("API Error: %d", statusErr.Code))
	case errors.Is(err, ErrConnection):
		return failed(msgConnection)
	default:
		return failed(fmt.Sprintf("Unexpected error: %s", err))
	}
}

// findSuffix scans SUFFIX:COUNT lines for suffix and returns its count, 0 when absent.
// Malformed lines are skipped. Padding entries have a count of 0 and never match.
func findSuffix(body []byte, suffix string) (int64, error) {
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		parts := strings.Split(strings.TrimSpace(scanner.Text()), ":")
		if len(parts) != 2 {
			continue
		}

		if parts[0] != suffix {
			continue
		}

		count, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid count for matching hash: %w", err)
		}
		return count, nil
	}

	return 0, scanner.Err()
}

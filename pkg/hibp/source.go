// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"regexp"
)

// RangeSource looks up a k-anonymity hash range. Only the 5 character prefix of a SHA1 hash
// is ever given to a source.
type RangeSource interface {
	// Range returns the newline separated SUFFIX:COUNT lines of every known hash that starts
	// with prefix.
	Range(ctx context.Context, prefix string) ([]byte, error)
}

var (
	// ErrTimeout is returned when a range lookup does not finish in time.
	ErrTimeout = errors.New("range lookup timed out")
	// ErrConnection is returned when the range service can not be reached.
	ErrConnection = errors.New("range service unreachable")
	// ErrRangeNotFound is returned by sources that only hold some of the ranges.
	ErrRangeNotFound = errors.New("range not found")
	// ErrInvalidPrefix is returned for prefixes that are not 5 uppercase hex characters.
	ErrInvalidPrefix = errors.New("invalid range prefix")
)

// StatusError is returned when the range service answers with anything but 200 OK.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("range service responded with status %d", e.Code)
}

var prefixRegex = regexp.MustCompile("^[A-F\\d]{5}$")

func validPrefix(prefix string) bool {
	return prefixRegex.MatchString(prefix)
}

// classify wraps transport errors with ErrTimeout or ErrConnection so callers can tell them
// apart with errors.Is. Errors already classified, or unknown, are returned as is.
func classify(err error) error {
	if err == nil || errors.Is(err, ErrTimeout) || errors.Is(err, ErrConnection) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	var urlErr *url.Error
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &urlErr) || errors.As(err, &opErr) || errors.As(err, &dnsErr) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}

	return err
}

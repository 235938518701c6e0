// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultAPIURL is the Pwned Passwords range API.
	DefaultAPIURL = "https://api.pwnedpasswords.com"
	// DefaultTimeout bounds every range lookup.
	DefaultTimeout = 5 * time.Second
	// UserAgent identifies this client to the range API.
	UserAgent = "pwdguard-breach-checker/1.0"
)

// HTTPSource queries the Pwned Passwords range API. Requests are never retried, a failed
// lookup is reported once and retrying is left to the caller.
type HTTPSource struct {
	baseURL string
	padding bool
	http    *retryablehttp.Client
}

// NewHTTPSource creates a source for the range API at baseURL (DefaultAPIURL when empty).
// When padding is set the API pads every response with fake zero count entries so the
// response size does not give away the prefix either.
func NewHTTPSource(baseURL string, timeout time.Duration, padding bool) *HTTPSource {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &HTTPSource{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		padding: padding,
		http:    lookupHttpClient(timeout),
	}
}

func lookupHttpClient(timeout time.Duration) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 0
	client.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		// Never retry, but let an expired context win over the transport error.
		return false, ctx.Err()
	}

	client.HTTPClient = &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			DialContext: (&net.Dialer{
				Timeout:   timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			IdleConnTimeout:     30 * time.Second,
			TLSHandshakeTimeout: timeout,
		},
	}

	return client
}

func rangeHttpRequest(ctx context.Context, baseURL, prefix string, padding bool) (*retryablehttp.Request, error) {
	req, err := retryablehttp.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s/range/%s", baseURL, prefix),
		nil,
	)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", UserAgent)
	if padding {
		req.Header.Set("Add-Padding", "true")
	}
	return req, nil
}

func (s *HTTPSource) Range(ctx context.Context, prefix string) ([]byte, error) {
	if !validPrefix(prefix) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
	}

	req, err := rangeHttpRequest(ctx, s.baseURL, prefix, s.padding)
	if err != nil {
		return nil, err
	}

	timer := time.Now()
	res, err := s.http.Do(req)
	if err != nil {
		return nil, classify(err)
	}

	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Warn().Err(err).Msgf("error closing body for range %s", prefix)
		}
	}(res.Body)

	if res.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, classify(err)
	}

	log.Debug().
		Str("range", prefix).
		Str("cache", res.Header.Get("CF-Cache-Status")).
		Dur("took", time.Since(timer)).
		Msg("range lookup complete")
	return body, nil
}

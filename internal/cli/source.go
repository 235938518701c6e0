// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"time"

	"github.com/alvinbaena/pwdguard/pkg/hibp"
	"github.com/rs/zerolog/log"
)

// newRangeSource picks the local mirror when dir is set and the range API otherwise, cached
// when cacheSize is positive. The returned func releases the cache.
func newRangeSource(dir, url string, timeout time.Duration, padding bool, cacheSize int64, cacheTTL time.Duration) (hibp.RangeSource, func(), error) {
	var source hibp.RangeSource
	if dir != "" {
		mirror, err := hibp.NewDirSource(dir)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msgf("checking breaches against the local mirror in %s", dir)
		source = mirror
	} else {
		log.Debug().Msgf("checking breaches against %s", url)
		source = hibp.NewHTTPSource(url, timeout, padding)
	}

	if cacheSize <= 0 {
		return source, func() {}, nil
	}

	cached, err := hibp.NewCachedSource(source, cacheSize, cacheTTL)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Msgf("caching up to %d ranges for %v", cacheSize, cacheTTL)

	return cached, cached.Close, nil
}

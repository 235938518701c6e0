// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog/log"
)

// CachedSource keeps recently used ranges in memory. Ranges are public data keyed by the
// 5 character prefix, neither passwords nor full hashes are cached.
type CachedSource struct {
	source RangeSource
	cache  *ristretto.Cache
	ttl    time.Duration
}

// NewCachedSource caches up to size ranges from source. A ttl of 0 keeps ranges until they
// are evicted.
func NewCachedSource(source RangeSource, size int64, ttl time.Duration) (*CachedSource, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * size,
		MaxCost:     size,
		BufferItems: 64,
		// Each range costs 1, size is the number of ranges kept.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}

	return &CachedSource{source: source, cache: cache, ttl: ttl}, nil
}

func (c *CachedSource) Range(ctx context.Context, prefix string) ([]byte, error) {
	if v, ok := c.cache.Get(prefix); ok {
		log.Debug().Str("range", prefix).Msg("range cache hit")
		return v.([]byte), nil
	}

	body, err := c.source.Range(ctx, prefix)
	if err != nil {
		return nil, err
	}

	c.cache.SetWithTTL(prefix, body, 1, c.ttl)
	return body, nil
}

// Close stops the cache goroutines.
func (c *CachedSource) Close() {
	c.cache.Close()
}

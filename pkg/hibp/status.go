// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type status struct {
	rangesDownloaded           uint64
	rangesFailed               uint64
	hashesDownloaded           uint64
	cloudflareRequests         uint64
	cloudflareHits             uint64
	cloudflareMisses           uint64
	cloudflareRequestTimeTotal uint64
	start                      time.Time
	ticker                     *time.Ticker
	progress                   chan bool
	totalRanges                int
}

func newStatus(totalRanges int, every time.Duration) *status {
	return &status{
		start:       time.Now(),
		ticker:      time.NewTicker(every),
		progress:    make(chan bool),
		totalRanges: totalRanges,
	}
}

// BeginProgress reports the progress of the mirror on every tick.
func (s *status) BeginProgress() {
	go func() {
		for {
			select {
			case <-s.progress:
				return
			case <-s.ticker.C:
				total := float64(s.totalRanges)
				done := float64(atomic.LoadUint64(&s.rangesDownloaded))
				log.Info().Msgf("%.2f%% hash ranges mirrored. %.0f hashes/s", done*100/total, s.hashesPerSecond())
			}
		}
	}()
}

func (s *status) RangeDownloaded(hashes int) {
	atomic.AddUint64(&s.rangesDownloaded, 1)
	atomic.AddUint64(&s.hashesDownloaded, uint64(hashes))
}

func (s *status) RangeFailed() {
	atomic.AddUint64(&s.rangesFailed, 1)
}

func (s *status) Failed() uint64 {
	return atomic.LoadUint64(&s.rangesFailed)
}

func (s *status) RequestComplete(res *http.Response, millis int64) {
	atomic.AddUint64(&s.cloudflareRequestTimeTotal, uint64(millis))
	atomic.AddUint64(&s.cloudflareRequests, 1)

	if cacheHit := res.Header.Get("CF-Cache-Status"); cacheHit == "HIT" {
		atomic.AddUint64(&s.cloudflareHits, 1)
	} else {
		atomic.AddUint64(&s.cloudflareMisses, 1)
	}
}

func (s *status) hashesPerSecond() float64 {
	elapsed := time.Since(s.start)
	hashes := float64(atomic.LoadUint64(&s.hashesDownloaded))
	if elapsed.Nanoseconds() > 0 {
		return hashes / elapsed.Seconds()
	}

	return hashes
}

func (s *status) Done() {
	s.ticker.Stop()
	s.progress <- true

	p := message.NewPrinter(language.English)
	log.Info().Msgf("finished mirroring %s hash ranges in %v. %.0f hashes/s",
		p.Sprintf("%d", s.rangesDownloaded), time.Since(s.start), s.hashesPerSecond())

	if s.cloudflareRequests == 0 {
		return
	}

	requests := float64(s.cloudflareRequests)
	log.Debug().Msgf("made %s Cloudflare requests. Average response time %.2f ms",
		p.Sprintf("%d", s.cloudflareRequests), float64(s.cloudflareRequestTimeTotal)/requests)
	log.Debug().Msgf("cloudflare cache hits: %s (%.2f%%), misses: %s (%.2f%%)",
		p.Sprintf("%d", s.cloudflareHits), float64(s.cloudflareHits*100)/requests,
		p.Sprintf("%d", s.cloudflareMisses), float64(s.cloudflareMisses*100)/requests)
}

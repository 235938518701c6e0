// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package util

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

const mib = 1024 * 1024

// Stats returns a function that logs the current memory stats at debug level. Meant to be
// deferred around long-running work.
func Stats() func() {
	return func() {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		log.Debug().Msgf("Alloc: %d MB, TotalAlloc: %d MB, Requested: %d MB",
			ms.Alloc/mib, ms.TotalAlloc/mib, ms.Sys/mib)
		log.Debug().Msgf("Mallocs: %d, Frees: %d, GC: %d", ms.Mallocs, ms.Frees, ms.NumGC)
		log.Debug().Msgf("HeapAlloc: %d MB, HeapSys: %d MB, HeapIdle: %d MB",
			ms.HeapAlloc/mib, ms.HeapSys/mib, ms.HeapIdle/mib)
		log.Debug().Msgf("HeapObjects: %d", ms.HeapObjects)
	}
}

func ApplyCliSettings(verbose bool, profile bool, pprofPort uint16) {
	if verbose {
		log.Warn().Msgf("verbosity up")
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if profile {
		log.Info().Msgf("profiling is enabled for this session. Server will listen on port %d", pprofPort)
		go func() {
			if err := http.ListenAndServe(fmt.Sprintf(":%d", pprofPort), nil); err != nil {
				log.Error().Err(err).Msgf("error starting profiling server on port %d", pprofPort)
				return
			}
		}()
	}
}

// CheckRam warns when the system does not have required bytes of memory available.
func CheckRam(required uint64) {
	memStat, err := mem.VirtualMemory()
	if err != nil {
		log.Warn().Msgf("estimated memory use is %d MiB, make sure it is available", required/mib)
		return
	}

	log.Debug().Msgf("system has %.2f MiB of RAM available", float64(memStat.Available)/mib)
	if required > memStat.Available {
		log.Warn().Msgf("estimated memory use is %d MiB but only %d MiB are available. "+
			"Expect swapping and general slowness", required/mib, memStat.Available/mib)
	}
}

// CheckDiskSpace fails when the partition holding path has less than required bytes free.
func CheckDiskSpace(path string, required uint64) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	usage, err := disk.Usage(abs)
	if err != nil {
		log.Debug().Err(err).Msgf("error getting current storage sizes")
		log.Warn().Msgf("could not check free space, at least %.2f GiB are needed", float64(required)/(1024*mib))
		return nil
	}

	log.Debug().Msgf("%s has %.2f GiB free", abs, float64(usage.Free)/(1024*mib))
	if required > usage.Free {
		return fmt.Errorf("%s does not have sufficient space free (%.2f GiB). Please free some space before trying again",
			abs, float64(required)/(1024*mib))
	}

	return nil
}

// ToScreamingSnakeCase turns a Go field name like TLSCert into TLS_CERT.
func ToScreamingSnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				b.WriteRune('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}

	return b.String()
}

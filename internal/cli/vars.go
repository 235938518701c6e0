// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import "time"

var (
	// root
	verbose bool
	// root
	profile bool
	// root
	pprofPort uint16
	// strength, breach
	interactive bool
	// strength, breach
	jsonOutput bool
	// strength
	withZxcvbn bool
	// breach
	hashed bool
	// breach, serve
	mirrorDir string
	// breach, mirror, serve
	apiURL string
	// breach, serve
	timeout time.Duration
	// breach, serve
	padding bool
	// serve
	cacheSize int64
	// serve
	cacheTTL time.Duration
	// mirror
	outDir string
	// mirror
	threads int
	// mirror
	ranges int
	// generate password
	length int
	// generate password
	noLower, noUpper, noDigits, noSpecial bool
	// generate password
	excludeAmbiguous bool
	// generate passphrase
	wordCount int
	// generate passphrase
	separator string
	// generate passphrase
	noCapitalize, noNumber bool
	// serve
	selfTLS bool
	// serve
	tlsCert string
	// serve
	tlsKey string
	// serve
	port uint16
)

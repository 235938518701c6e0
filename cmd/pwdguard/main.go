// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package main

import (
	"os"

	"github.com/alvinbaena/pwdguard/internal/cli"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// stdout is reserved for command output
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

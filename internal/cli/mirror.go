// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"os"
	"path/filepath"

	"github.com/alvinbaena/pwdguard/internal/util"
	"github.com/alvinbaena/pwdguard/pkg/hibp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	mirrorCmd = &cobra.Command{
		Use:   "mirror",
		Short: "Mirror the Pwned Passwords hash ranges to a local directory for offline checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return mirrorCommand()
		},
	}
)

func init() {
	mirrorCmd.Flags().StringVarP(&outDir, "out-dir", "o", "./pwned-ranges", "Mirror directory path. Can be absolute or relative.")
	mirrorCmd.Flags().IntVarP(&threads, "threads", "t", 0, "Number of threads to use for the download. If omitted or less than 1, defaults to eight times the number of logical processors of the machine.")
	mirrorCmd.Flags().IntVar(&ranges, "ranges", hibp.TotalRanges, "Number of ranges to mirror, starting at 00000.")
	mirrorCmd.Flags().StringVar(&apiURL, "api-url", hibp.DefaultAPIURL, "Base URL of the Pwned Passwords range API.")

	rootCmd.AddCommand(mirrorCmd)
}

func mirrorCommand() error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	abs, err := filepath.Abs(outDir)
	if err != nil {
		log.Fatal().Err(err).Msgf("could not get absolute path of directory")
	}

	if entries, err := os.ReadDir(abs); err == nil && len(entries) > 0 {
		log.Warn().Msgf("directory %s is not empty, existing ranges will be overwritten", abs)
	}

	d := hibp.NewDownloader(abs, apiURL, threads)
	return d.ProcessRanges(ranges, false)
}

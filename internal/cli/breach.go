// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"errors"

	"github.com/alvinbaena/pwdguard/internal/util"
	"github.com/alvinbaena/pwdguard/pkg/hibp"
	"github.com/manifoldco/promptui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	breachCmd = &cobra.Command{
		Use:   "breach [PASSWORD]",
		Short: "Check if a password appears in the Pwned Passwords dumps",
		Long: "Check if a password appears in the Pwned Passwords dumps. Only the first 5 characters of the " +
			"SHA1 hash of the password are sent to the range API, the rest of the match is done locally.",
		Args: func(cmd *cobra.Command, args []string) error {
			if !interactive {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			util.ApplyCliSettings(verbose, profile, pprofPort)

			// A single lookup gains nothing from a cache, an interactive session might.
			var size int64
			if interactive {
				size = 64
			}

			source, closeSource, err := newRangeSource(mirrorDir, apiURL, timeout, padding, size, 0)
			if err != nil {
				return err
			}
			defer closeSource()

			checker := hibp.NewChecker(source, timeout)
			if interactive {
				return runInteractiveSession(breachPrompt(), func(input string) error {
					return breachCommand(cmd.Context(), checker, input)
				})
			}

			return breachCommand(cmd.Context(), checker, args[0])
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	breachCmd.Flags().BoolVarP(&interactive, "interactive", "n", false, "Interactive mode.")
	breachCmd.Flags().BoolVarP(&hashed, "hashed", "s", false, "If the supplied password will be a Hexadecimal SHA1 hash or a plain text string.")
	breachCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON.")
	breachCmd.Flags().StringVar(&mirrorDir, "mirror-dir", "", "Check against a local mirror created with the mirror command instead of the range API.")
	breachCmd.Flags().StringVar(&apiURL, "api-url", hibp.DefaultAPIURL, "Base URL of the Pwned Passwords range API.")
	breachCmd.Flags().DurationVar(&timeout, "timeout", hibp.DefaultTimeout, "Timeout of the range lookup. Lookups are never retried.")
	breachCmd.Flags().BoolVar(&padding, "padding", true, "Ask the range API to pad responses so their size does not reveal the range.")
	breachCmd.MarkFlagsMutuallyExclusive("mirror-dir", "api-url")

	rootCmd.AddCommand(breachCmd)
}

func breachPrompt() promptui.Prompt {
	label := "Password"
	if hashed {
		label = "SHA1 Hex hash"
		log.Info().Msgf("flag 'hashed' is set. Please use SHA1 Hashed passwords.")
	}

	prompt := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) == 0 {
				return errors.New("please enter a valid password")
			}

			if hashed && !hibp.ValidHash(input) {
				return errors.New("input is not a valid SHA1 Hexadecimal hash")
			}
			return nil
		},
	}

	if !hashed {
		prompt.Mask = '*'
	}

	return prompt
}

func breachCommand(ctx context.Context, checker *hibp.Checker, input string) error {
	var report hibp.Report
	if hashed {
		report = checker.CheckHash(ctx, input)
	} else {
		report = checker.Check(ctx, input)
	}

	if jsonOutput {
		return printJSON(report)
	}

	if !report.Checked {
		return errors.New(report.Error)
	}

	if report.IsBreached() {
		log.Warn().Str("severity", string(report.Severity)).Msg(report.Message)
	} else {
		log.Info().Msg(report.Message)
	}

	return nil
}

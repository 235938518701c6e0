// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"errors"

	"github.com/alvinbaena/pwdguard/internal/util"
	"github.com/alvinbaena/pwdguard/pkg/strength"
	"github.com/manifoldco/promptui"
	"github.com/nbutton23/zxcvbn-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	strengthCmd = &cobra.Command{
		Use:   "strength [PASSWORD]",
		Short: "Score the strength of a password",
		Args: func(cmd *cobra.Command, args []string) error {
			if !interactive {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			util.ApplyCliSettings(verbose, profile, pprofPort)
			scorer := strength.NewDefaultScorer()

			if interactive {
				prompt := promptui.Prompt{
					Label: "Password",
					Mask:  '*',
					Validate: func(input string) error {
						if len(input) == 0 {
							return errors.New("please enter a password")
						}
						return nil
					},
				}
				return runInteractiveSession(prompt, func(input string) error {
					return strengthCommand(scorer, input)
				})
			}

			return strengthCommand(scorer, args[0])
		},
	}
)

func init() {
	strengthCmd.Flags().BoolVarP(&interactive, "interactive", "n", false, "Interactive mode, the password is read from a masked prompt.")
	strengthCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON.")
	strengthCmd.Flags().BoolVar(&withZxcvbn, "zxcvbn", false, "Also print the zxcvbn estimate as a second opinion.")

	rootCmd.AddCommand(strengthCmd)
}

func strengthCommand(scorer *strength.Scorer, password string) error {
	report := scorer.Check(password)
	if jsonOutput {
		return printJSON(report)
	}

	log.Info().Msgf("Strength: %s (%d/%d, %d%%)", report.Strength, report.Score, report.MaxScore, report.Percentage)
	log.Info().Msgf("Length: %d, entropy: %.2f bits, time to crack: %s", report.Length, report.Entropy, report.CrackTime)
	for _, f := range report.Feedback {
		log.Info().Msgf("  - %s", f)
	}

	if withZxcvbn && password != "" {
		match := zxcvbn.PasswordStrength(password, nil)
		log.Info().Msgf("zxcvbn: score %d/4, entropy %.2f bits, time to crack: %s", match.Score, match.Entropy, match.CrackTimeDisplay)
	}

	return nil
}

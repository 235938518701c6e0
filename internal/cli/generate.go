// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/alvinbaena/pwdguard/pkg/generator"
	"github.com/spf13/cobra"
)

var (
	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate random passwords and passphrases",
	}

	generatePasswordCmd = &cobra.Command{
		Use:   "password",
		Short: "Generate a random password with at least one character of every selected class",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := generator.Password(generator.Options{
				Length:           length,
				Lowercase:        !noLower,
				Uppercase:        !noUpper,
				Digits:           !noDigits,
				Special:          !noSpecial,
				ExcludeAmbiguous: excludeAmbiguous,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(stdout, password)
			return err
		},
	}

	generatePassphraseCmd = &cobra.Command{
		Use:   "passphrase",
		Short: "Generate a passphrase of random distinct words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			passphrase, err := generator.Passphrase(generator.PassphraseOptions{
				WordCount:  wordCount,
				Separator:  separator,
				Capitalize: !noCapitalize,
				AddNumber:  !noNumber,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(stdout, passphrase)
			return err
		},
	}
)

func init() {
	generatePasswordCmd.Flags().IntVarP(&length, "length", "l", 16, "Length of the password, at least 4.")
	generatePasswordCmd.Flags().BoolVar(&noLower, "no-lower", false, "Do not use lowercase letters.")
	generatePasswordCmd.Flags().BoolVar(&noUpper, "no-upper", false, "Do not use uppercase letters.")
	generatePasswordCmd.Flags().BoolVar(&noDigits, "no-digits", false, "Do not use digits.")
	generatePasswordCmd.Flags().BoolVar(&noSpecial, "no-special", false, "Do not use special characters.")
	generatePasswordCmd.Flags().BoolVar(&excludeAmbiguous, "exclude-ambiguous", false, "Leave out characters that are easy to confuse (l, o, I, O, 0, 1).")

	generatePassphraseCmd.Flags().IntVarP(&wordCount, "words", "w", 4, fmt.Sprintf("Number of words, between 1 and %d.", generator.MaxWords()))
	generatePassphraseCmd.Flags().StringVar(&separator, "separator", "-", "Separator between words.")
	generatePassphraseCmd.Flags().BoolVar(&noCapitalize, "no-capitalize", false, "Do not capitalize the words.")
	generatePassphraseCmd.Flags().BoolVar(&noNumber, "no-number", false, "Do not append a number.")

	generateCmd.AddCommand(generatePasswordCmd, generatePassphraseCmd)
	rootCmd.AddCommand(generateCmd)
}

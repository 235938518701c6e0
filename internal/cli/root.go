// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "pwdguard [COMMAND] [OPTIONS]",
		Short: "Check password strength and exposure in the Pwned Passwords dumps",
		Long: "Score how hard a password is to guess, check it against the Pwned Passwords (haveibeenpwned.com) " +
			"range API without sending the password or its full hash, and generate new passwords and passphrases. " +
			"The range API can also be mirrored to a local directory for offline checks.",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print more information on the processing")
	rootCmd.PersistentFlags().BoolVar(&profile, "profile", false, "Enable the profiling server (pprof) when running commands")
	rootCmd.PersistentFlags().Uint16Var(&pprofPort, "profile-port", 6060, "The port to use for the pprof server. Only used if the profile flag is set")
}

func Execute() error {
	return rootCmd.Execute()
}

// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/rs/zerolog/log"
)

var stdout io.Writer = os.Stdout

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(stdout, string(out))
	return err
}

// runInteractiveSession prompts until the user stops it with ^C or ^D, handing every input to fn.
func runInteractiveSession(prompt promptui.Prompt, fn func(input string) error) error {
	log.Info().Msgf("running interactive session. ^C to exit")
	for {
		result, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				log.Info().Msgf("Goodbye")
				return nil
			}
			return err
		}

		if err = fn(result); err != nil {
			log.Error().Err(err).Msg("error processing input")
		}
	}
}

// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"github.com/alvinbaena/pwdguard/pkg/hibp"
	"github.com/alvinbaena/pwdguard/pkg/strength"
)

type passwordRequest struct {
	Password string `json:"password"`
}

type hashRequest struct {
	Hash string `json:"hash" binding:"required"`
}

type estimate struct {
	Score            int     `json:"score"`
	Entropy          float64 `json:"entropy"`
	CrackTime        float64 `json:"crack_time"`
	CrackTimeDisplay string  `json:"crack_time_display"`
}

type strengthResponse struct {
	Success  bool            `json:"success"`
	Data     strength.Report `json:"data"`
	Estimate *estimate       `json:"estimate,omitempty"`
}

type breachResponse struct {
	Success bool        `json:"success"`
	Data    hibp.Report `json:"data"`
}

// Pointers tell a missing field, which gets the default, apart from an explicit false.
type passwordOptionsRequest struct {
	Length           *int  `json:"length"`
	Lowercase        *bool `json:"lowercase"`
	Uppercase        *bool `json:"uppercase"`
	Digits           *bool `json:"digits"`
	Special          *bool `json:"special"`
	ExcludeAmbiguous *bool `json:"exclude_ambiguous"`
}

type passwordResponse struct {
	Success  bool   `json:"success"`
	Password string `json:"password"`
}

type passphraseOptionsRequest struct {
	WordCount  *int    `json:"word_count"`
	Separator  *string `json:"separator"`
	Capitalize *bool   `json:"capitalize"`
	AddNumber  *bool   `json:"add_number"`
}

type passphraseResponse struct {
	Success    bool   `json:"success"`
	Passphrase string `json:"passphrase"`
}

// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/alvinbaena/pwdguard/pkg/generator"
	"github.com/gin-gonic/gin"
)

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// bindOptional binds a JSON body where every field is optional, so an empty body is fine.
func bindOptional(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func generatePassword(c *gin.Context) {
	var req passwordOptionsRequest
	if err := bindOptional(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	opts := generator.DefaultOptions()
	if req.Length != nil {
		opts.Length = *req.Length
	}
	opts.Lowercase = boolOr(req.Lowercase, opts.Lowercase)
	opts.Uppercase = boolOr(req.Uppercase, opts.Uppercase)
	opts.Digits = boolOr(req.Digits, opts.Digits)
	opts.Special = boolOr(req.Special, opts.Special)
	opts.ExcludeAmbiguous = boolOr(req.ExcludeAmbiguous, opts.ExcludeAmbiguous)

	password, err := generator.Password(opts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, passwordResponse{Success: true, Password: password})
}

func generatePassphrase(c *gin.Context) {
	var req passphraseOptionsRequest
	if err := bindOptional(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	opts := generator.DefaultPassphraseOptions()
	if req.WordCount != nil {
		opts.WordCount = *req.WordCount
	}
	if req.Separator != nil {
		opts.Separator = *req.Separator
	}
	opts.Capitalize = boolOr(req.Capitalize, opts.Capitalize)
	opts.AddNumber = boolOr(req.AddNumber, opts.AddNumber)

	passphrase, err := generator.Passphrase(opts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, passphraseResponse{Success: true, Passphrase: passphrase})
}

func RegisterGenerateApi(group *gin.RouterGroup) {
	group.POST("/password", generatePassword)
	group.POST("/passphrase", generatePassphrase)
}

// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"

	"github.com/alvinbaena/pwdguard/pkg/hibp"
	"github.com/alvinbaena/pwdguard/pkg/strength"
	"github.com/gin-gonic/gin"
	"github.com/nbutton23/zxcvbn-go"
)

type checkApi struct {
	scorer  *strength.Scorer
	checker *hibp.Checker
	metrics *metrics
}

func (q *checkApi) checkStrength(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	report := q.scorer.Check(req.Password)
	q.metrics.strengthChecked(report.Strength)

	resp := strengthResponse{Success: true, Data: report}
	if c.Query("zxcvbn") == "true" && req.Password != "" {
		match := zxcvbn.PasswordStrength(req.Password, nil)
		resp.Estimate = &estimate{
			Score:            match.Score,
			Entropy:          match.Entropy,
			CrackTime:        match.CrackTime,
			CrackTimeDisplay: match.CrackTimeDisplay,
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (q *checkApi) checkBreach(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	report := q.checker.Check(c.Request.Context(), req.Password)
	q.metrics.breachChecked(report)

	c.JSON(http.StatusOK, breachResponse{Success: true, Data: report})
}

func (q *checkApi) checkHash(c *gin.Context) {
	var req hashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if !hibp.ValidHash(req.Hash) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "input is not a valid SHA1 Hexadecimal hash"})
		return
	}

	report := q.checker.CheckHash(c.Request.Context(), req.Hash)
	q.metrics.breachChecked(report)

	c.JSON(http.StatusOK, breachResponse{Success: true, Data: report})
}

func RegisterCheckApi(group *gin.RouterGroup, scorer *strength.Scorer, checker *hibp.Checker, m *metrics) {
	q := &checkApi{scorer: scorer, checker: checker, metrics: m}

	group.POST("/strength", q.checkStrength)
	group.POST("/breach", q.checkBreach)
	group.POST("/hash", q.checkHash)
}

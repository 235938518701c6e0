// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"

	"github.com/alvinbaena/pwdguard/pkg/hibp"
	"github.com/alvinbaena/pwdguard/pkg/strength"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const Version = "1.0.0"

// NewRouter wires the check and generate APIs and the metrics endpoint into a new gin engine.
func NewRouter(scorer *strength.Scorer, checker *hibp.Checker, registry *prometheus.Registry) *gin.Engine {
	m := newMetrics(registry)

	router := gin.New()
	router.Use(gin.Recovery())
	// Browser front ends call the API from any origin.
	router.Use(cors.Default())
	router.Use(logger.SetLogger(logger.WithLogger(func(c *gin.Context, z zerolog.Logger) zerolog.Logger {
		return zerolog.New(gin.DefaultWriter).With().Timestamp().Logger()
	})))
	router.Use(m.middleware())

	router.GET("/", home)
	router.GET("/metrics", metricsHandler(registry))

	v1 := router.Group("/v1")
	RegisterCheckApi(v1.Group("/check"), scorer, checker, m)
	RegisterGenerateApi(v1.Group("/generate"))

	return router
}

func home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Password Security Checker API",
		"version": Version,
		"endpoints": gin.H{
			"check_strength":      "/v1/check/strength",
			"check_breach":        "/v1/check/breach",
			"check_hash":          "/v1/check/hash",
			"generate_password":   "/v1/generate/password",
			"generate_passphrase": "/v1/generate/passphrase",
			"metrics":             "/metrics",
		},
	})
}

// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"testing"
	"time"

	"github.com/alvinbaena/pwdguard/pkg/hibp"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("PORT", "8443")
	t.Setenv("SELF_TLS", "true")
	t.Setenv("HIBP_TIMEOUT", "2s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8443", cfg.Port)
	assert.True(t, cfg.SelfTLS)
	assert.Equal(t, 2*time.Second, cfg.HibpTimeout)
	assert.Equal(t, hibp.DefaultAPIURL, cfg.HibpAPIURL)
	assert.Equal(t, int64(1024), cfg.CacheSize)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
}

func TestLoadConfig_Invalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("TLS_CERT", "cert.pem")
	t.Setenv("HIBP_MIRROR_DIR", "/does/not/exist")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TLS_KEY")
	assert.Contains(t, err.Error(), "HIBP_MIRROR_DIR: This field must be an existing directory")
}

// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alvinbaena/pwdguard/pkg/hibp"
	"github.com/alvinbaena/pwdguard/pkg/strength"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	body string
	err  error
}

func (s staticSource) Range(context.Context, string) ([]byte, error) {
	return []byte(s.body), s.err
}

func setupRouter(t *testing.T, source hibp.RangeSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(strength.NewDefaultScorer(), hibp.NewChecker(source, time.Second), prometheus.NewRegistry())
}

func post(t *testing.T, router *gin.Engine, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return resp, out
}

func TestCheckStrength(t *testing.T) {
	router := setupRouter(t, staticSource{})

	resp, out := post(t, router, "/v1/check/strength", `{"password": "Tr0pic@l-Storm!2024"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, true, out["success"])

	data := out["data"].(map[string]interface{})
	assert.Equal(t, "Strong", data["strength"])
	assert.Equal(t, float64(7), data["score"])
	assert.Equal(t, float64(7), data["max_score"])
	assert.Equal(t, float64(100), data["percentage"])
	assert.Equal(t, float64(19), data["length"])
	assert.NotContains(t, out, "estimate")
}

func TestCheckStrength_Empty(t *testing.T) {
	router := setupRouter(t, staticSource{})

	resp, out := post(t, router, "/v1/check/strength", `{}`)
	require.Equal(t, http.StatusOK, resp.Code)

	data := out["data"].(map[string]interface{})
	assert.Equal(t, "Empty", data["strength"])
	assert.Equal(t, "Instant", data["crack_time"])
}

func TestCheckStrength_Zxcvbn(t *testing.T) {
	router := setupRouter(t, staticSource{})

	resp, out := post(t, router, "/v1/check/strength?zxcvbn=true", `{"password": "password"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	est := out["estimate"].(map[string]interface{})
	assert.Equal(t, float64(0), est["score"])
	assert.NotEmpty(t, est["crack_time_display"])
}

func TestCheckStrength_BadJSON(t *testing.T) {
	router := setupRouter(t, staticSource{})

	resp, out := post(t, router, "/v1/check/strength", `{"password": `)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, false, out["success"])
	assert.NotEmpty(t, out["error"])
}

func TestCheckBreach(t *testing.T) {
	router := setupRouter(t, staticSource{body: "1E4C9B93F3F0682250B6CF8331B7EE68FD8:52256179\r\n"})

	resp, out := post(t, router, "/v1/check/breach", `{"password": "password"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	data := out["data"].(map[string]interface{})
	assert.Equal(t, true, data["checked"])
	assert.Equal(t, true, data["breached"])
	assert.Equal(t, float64(52256179), data["count"])
	assert.Equal(t, "critical", data["severity"])
	assert.NotContains(t, data, "error")
}

func TestCheckBreach_Failure(t *testing.T) {
	router := setupRouter(t, staticSource{err: &hibp.StatusError{Code: 429}})

	resp, out := post(t, router, "/v1/check/breach", `{"password": "password"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	data := out["data"].(map[string]interface{})
	assert.Equal(t, false, data["checked"])
	assert.Equal(t, "API Error: 429", data["error"])
	assert.NotContains(t, data, "breached")
	assert.NotContains(t, data, "count")
	assert.NotContains(t, data, "severity")
}

func TestCheckHash(t *testing.T) {
	router := setupRouter(t, staticSource{body: "0018A45C4D1DEF81644B54AB7F969B88D65:1\r\n"})

	resp, out := post(t, router, "/v1/check/hash", `{"hash": "5baa61e4c9b93f3f0682250b6cf8331b7ee68fd8"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	data := out["data"].(map[string]interface{})
	assert.Equal(t, true, data["checked"])
	assert.Equal(t, false, data["breached"])
	assert.Equal(t, float64(0), data["count"])
	assert.Equal(t, "safe", data["severity"])

	resp, out = post(t, router, "/v1/check/hash", `{"hash": "password"}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "input is not a valid SHA1 Hexadecimal hash", out["error"])
}

func TestGeneratePassword(t *testing.T) {
	router := setupRouter(t, staticSource{})

	resp, out := post(t, router, "/v1/generate/password", `{"length": 24, "special": false}`)
	require.Equal(t, http.StatusOK, resp.Code)
	password := out["password"].(string)
	assert.Len(t, password, 24)
	assert.False(t, strings.ContainsAny(password, "!@#$%^&*()_+-=[]{}|;:,.<>?"))

	resp, out = post(t, router, "/v1/generate/password", `{"length": 3}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Password length must be at least 4 characters", out["error"])

	resp, out = post(t, router, "/v1/generate/password",
		`{"lowercase": false, "uppercase": false, "digits": false, "special": false}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "At least one character type must be selected", out["error"])
}

func TestGeneratePassword_EmptyBody(t *testing.T) {
	router := setupRouter(t, staticSource{})

	resp, out := post(t, router, "/v1/generate/password", ``)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, out["password"], 16)
}

func TestGeneratePassphrase(t *testing.T) {
	router := setupRouter(t, staticSource{})

	resp, out := post(t, router, "/v1/generate/passphrase", `{"word_count": 3, "separator": ".", "add_number": false}`)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, strings.Split(out["passphrase"].(string), "."), 3)

	resp, _ = post(t, router, "/v1/generate/passphrase", `{"word_count": 100}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHomeAndMetrics(t *testing.T) {
	router := setupRouter(t, staticSource{})
	post(t, router, "/v1/check/strength", `{"password": "abc"}`)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "/v1/check/strength")

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `pwdguard_strength_checks_total{strength="Very Weak"} 1`)
}

func TestCors(t *testing.T) {
	router := setupRouter(t, staticSource{})

	req := httptest.NewRequest(http.MethodOptions, "/v1/check/strength", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)

	req = httptest.NewRequest(http.MethodPost, "/v1/check/strength", strings.NewReader(`{"password": "abc"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:5173")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"))
}

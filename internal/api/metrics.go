// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"strconv"
	"time"

	"github.com/alvinbaena/pwdguard/pkg/hibp"
	"github.com/alvinbaena/pwdguard/pkg/strength"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics only counts outcomes, passwords and hashes never end up in a label.
type metrics struct {
	requestDuration *prometheus.HistogramVec
	strengthChecks  *prometheus.CounterVec
	breachChecks    *prometheus.CounterVec
}

func newMetrics(registry prometheus.Registerer) *metrics {
	m := &metrics{
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "http",
			Name:      "request_duration_seconds",
			Help:      "A histogram of duration, in seconds, handling HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15),
		}, []string{"method", "path", "status"}),
		strengthChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pwdguard",
			Name:      "strength_checks_total",
			Help:      "Number of strength checks by resulting strength tier.",
		}, []string{"strength"}),
		breachChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pwdguard",
			Name:      "breach_checks_total",
			Help:      "Number of breach checks by outcome.",
		}, []string{"outcome"}),
	}

	registry.MustRegister(m.requestDuration, m.strengthChecks, m.breachChecks)
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewGoCollector())

	return m
}

// middleware emits a request_duration_seconds metric on every request.
func (m *metrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		t := time.Now()

		c.Next()

		m.requestDuration.With(prometheus.Labels{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"status": strconv.Itoa(c.Writer.Status()),
		}).Observe(time.Since(t).Seconds())
	}
}

func (m *metrics) strengthChecked(tier strength.Tier) {
	m.strengthChecks.WithLabelValues(string(tier)).Inc()
}

func (m *metrics) breachChecked(report hibp.Report) {
	outcome := "failed"
	if report.Checked {
		if report.IsBreached() {
			outcome = "breached"
		} else {
			outcome = "clean"
		}
	}

	m.breachChecks.WithLabelValues(outcome).Inc()
}

func metricsHandler(registry *prometheus.Registry) gin.HandlerFunc {
	handler := promhttp.InstrumentMetricHandler(
		registry,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return func(c *gin.Context) {
		handler.ServeHTTP(c.Writer, c.Request)
	}
}

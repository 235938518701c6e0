// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alvinbaena/pwdguard/internal/api"
	"github.com/alvinbaena/pwdguard/internal/util"
	"github.com/alvinbaena/pwdguard/pkg/hibp"
	"github.com/alvinbaena/pwdguard/pkg/strength"
	"github.com/gin-gonic/gin"
	"github.com/likexian/selfca"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Rough size of a cached range, used to warn about memory use.
const cachedRangeSize = 40 * 1024

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the password strength, breach check and generator API",
		Long: "Serve the password strength, breach check and generator API. Every flag can also be set " +
			"from the environment: PORT, SELF_TLS, TLS_CERT, TLS_KEY, DEBUG, HIBP_API_URL, HIBP_TIMEOUT, " +
			"HIBP_MIRROR_DIR, CACHE_SIZE and CACHE_TTL.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCommand(cmd)
		},
	}
)

func init() {
	serveCmd.Flags().BoolVar(&selfTLS, "self-tls", false,
		"If the server should use a self-signed certificate when starting. The certificate is renewed on each server restart")
	serveCmd.Flags().StringVar(&tlsCert, "tls-cert", "", "Path to the PEM encoded TLS certificate to be used by the server")
	serveCmd.Flags().StringVar(&tlsKey, "tls-key", "", "Path to the PEM encoded TLS private key to be used by the server")
	serveCmd.Flags().Uint16VarP(&port, "port", "p", 3100, "Port to be used by the server")
	serveCmd.Flags().StringVar(&mirrorDir, "mirror-dir", "", "Check breaches against a local mirror instead of the range API")
	serveCmd.Flags().StringVar(&apiURL, "api-url", hibp.DefaultAPIURL, "Base URL of the Pwned Passwords range API")
	serveCmd.Flags().DurationVar(&timeout, "timeout", hibp.DefaultTimeout, "Timeout of every range lookup")
	serveCmd.Flags().BoolVar(&padding, "padding", true, "Ask the range API to pad responses")
	serveCmd.Flags().Int64Var(&cacheSize, "cache-size", 1024, "Number of hash ranges kept in memory, 0 disables the cache")
	serveCmd.Flags().DurationVar(&cacheTTL, "cache-ttl", time.Hour, "How long a cached hash range is kept")

	rootCmd.AddCommand(serveCmd)
}

var serveFlagKeys = map[string]string{
	"port":       "PORT",
	"self-tls":   "SELF_TLS",
	"tls-cert":   "TLS_CERT",
	"tls-key":    "TLS_KEY",
	"verbose":    "DEBUG",
	"mirror-dir": "HIBP_MIRROR_DIR",
	"api-url":    "HIBP_API_URL",
	"timeout":    "HIBP_TIMEOUT",
	"cache-size": "CACHE_SIZE",
	"cache-ttl":  "CACHE_TTL",
}

func serveCommand(cmd *cobra.Command) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	for flag, key := range serveFlagKeys {
		if err := viper.BindPFlag(key, cmd.Flag(flag)); err != nil {
			return err
		}
	}

	cfg, err := api.LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.CacheSize > 0 {
		util.CheckRam(uint64(cfg.CacheSize) * cachedRangeSize)
	}

	source, closeSource, err := newRangeSource(cfg.MirrorDir, cfg.HibpAPIURL, cfg.HibpTimeout, padding, cfg.CacheSize, cfg.CacheTTL)
	if err != nil {
		return fmt.Errorf("error initializing breach checker: %w", err)
	}
	defer closeSource()

	router := api.NewRouter(
		strength.NewDefaultScorer(),
		hibp.NewChecker(source, cfg.HibpTimeout),
		prometheus.NewRegistry(),
	)

	srvAddr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              srvAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Msgf("starting TLS Server on address: %s", srvAddr)
		if cfg.TLSCert != "" && cfg.TLSKey != "" {
			// service connections with tls certs
			if err := srv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("error starting server")
			}
		} else if cfg.SelfTLS {
			log.Warn().Msgf("using auto self-signed certificate for TLS. This is not recommended for production. Please consider using your own certificates.")
			pair, err := selfSignedCertificate()
			if err != nil {
				log.Fatal().Err(err).Msg("error generating auto self-signed certificate")
			}

			srv.TLSConfig = &tls.Config{
				Certificates: []tls.Certificate{pair},
			}

			// service connections with tls config, no need to pass files
			if err = srv.ListenAndServeTLS("", ""); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("error starting server")
			}
		} else {
			log.Fatal().Msg("server requires TLS configuration to start. " +
				"Please use either the --self-tls flag or set a certificate with the --tls-cert and --tls-key flags")
		}
	}()

	gracefulShutdown(srv, shutdownTimeout(cfg.HibpTimeout))
	return nil
}

func selfSignedCertificate() (tls.Certificate, error) {
	caConfig := selfca.Certificate{
		IsCA:      true,
		KeySize:   2048,
		NotBefore: time.Now(),
		// 30 day self-signed cert.
		NotAfter: time.Now().Add(time.Duration(30*24) * time.Hour),
	}

	certificate, key, err := selfca.GenerateCertificate(caConfig)
	if err != nil {
		return tls.Certificate{}, err
	}

	return tls.X509KeyPair(
		pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certificate}),
		pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}),
	)
}

// shutdownTimeout leaves in flight breach lookups time to finish, they take at most lookup.
func shutdownTimeout(lookup time.Duration) time.Duration {
	if lookup <= 0 {
		lookup = hibp.DefaultTimeout
	}
	return lookup + time.Second
}

func gracefulShutdown(srv *http.Server, timeout time.Duration) {
	// Wait for interrupt signal to gracefully shut down the server with
	// a timeout.
	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("server Shutdown.")
	}
	log.Info().Msg("server exiting...")
}

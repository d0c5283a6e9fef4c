// Package main is the entry point of the chat analytics API server. It loads
// configuration, resolves the startup resources (stop-word lists, sentiment
// analyzer), wires the HTTP transport, and runs until interrupted.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-chat-analytics/internal/config"
	httpapi "github.com/tbourn/go-chat-analytics/internal/http"
	"github.com/tbourn/go-chat-analytics/internal/observability"
	"github.com/tbourn/go-chat-analytics/internal/sentiment"
	"github.com/tbourn/go-chat-analytics/internal/services"
	"github.com/tbourn/go-chat-analytics/internal/session"
	"github.com/tbourn/go-chat-analytics/internal/stopwords"
	"github.com/tbourn/go-chat-analytics/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	// Local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	sysutil.SetLogLevel(cfg.LogLevel)

	// Stop-word lists are hard startup dependencies: a missing file is a
	// deployment defect, not a per-request condition.
	stop, err := stopwords.Load(cfg.StopwordsPath)
	if err != nil {
		return err
	}
	englishStop, err := stopwords.Load(cfg.EnglishStopwordsPath)
	if err != nil {
		return err
	}
	log.Info().
		Int("stopwords", stop.Len()).
		Int("stopwords_en", englishStop.Len()).
		Msg("stop-word lists loaded")

	ctx, stopSignals := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		return err
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(c); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	svc := services.NewAnalysisService(
		session.NewStore(cfg.ReportTTL),
		stop,
		englishStop,
		sentiment.NewScorer(),
		cfg.WordLimit,
	)

	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	httpapi.RegisterRoutes(engine, svc, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("base_path", cfg.APIBasePath).
			Str("version", sysutil.FirstNonEmpty(version, "dev")).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

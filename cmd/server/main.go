// Command server runs the Mission Control REST API.
//
// @title           Mission Control API
// @version         1.0
// @description     Missions, incidents and users over a pluggable document or SQL store.
// @BasePath        /api
// @schemes         http https
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
	zlog "github.com/rs/zerolog/log"

	"github.com/tbourn/mission-control/internal/config"
	httpapi "github.com/tbourn/mission-control/internal/http"
	"github.com/tbourn/mission-control/internal/observability"
	"github.com/tbourn/mission-control/internal/services"
	"github.com/tbourn/mission-control/internal/sysutil"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	logger := sysutil.NewLogger(os.Stdout, cfg.LogPretty, cfg.OTEL.ServiceName)
	zlog.Logger = logger
	sysutil.SetLogLevel(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	shutdownOTel, err := observability.SetupOTel(ctx, cfg, version)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			logger.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.Close(sctx); err != nil {
			logger.Warn().Err(err).Msg("store close")
		}
	}()
	logger.Info().Str("driver", cfg.DBDriver).Msg("store ready")

	go sweepIdempotency(ctx, services.NewIdempotencyService(st, cfg.IdempotencyTTL), cfg.IdempotencySweep, logger)

	r := gin.New()
	httpapi.RegisterRoutes(r, st, cfg)

	srv := &http.Server{
		Addr:              sysutil.ListenAddr(cfg.Port, "5000"),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("version", version).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}

// Command server runs the MiniTwit web application: the HTML page flow and
// the simulator JSON API over one relational store.
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
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-minitwit/internal/config"
	httpapi "github.com/tbourn/go-minitwit/internal/http"
	"github.com/tbourn/go-minitwit/internal/observability"
	"github.com/tbourn/go-minitwit/internal/repo"
	"github.com/tbourn/go-minitwit/internal/sysutil"
)

// version is set at build time with -ldflags "-X main.version=...".
var version string

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	ver := sysutil.FirstNonEmpty(version, os.Getenv("APP_VERSION"), "dev")

	sysutil.SetLogLevel(cfg.LogLevel)
	log.Logger = sysutil.NewLogger(os.Stdout, cfg.LogPretty, cfg.OTEL.ServiceName, ver)

	if err := run(cfg, ver); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg config.Config, ver string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, ver)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown")
		}
	}()

	gormLevel := logger.Warn
	if cfg.LogLevel == "debug" {
		gormLevel = logger.Info
	}
	db, err := repo.Open(ctx, repo.Options{
		Driver:  cfg.DB.Driver,
		Path:    cfg.DB.Path,
		URL:     cfg.DB.URL,
		Tracing: cfg.OTEL.Enabled,
		Logger:  logger.Default.LogMode(gormLevel),
	})
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := repo.AutoMigrate(db); err != nil {
		return err
	}

	if cfg.UsesDefaultSessionSecret() && cfg.GinMode == gin.ReleaseMode {
		log.Warn().Msg("SESSION_SECRET is the development default; session cookies can be forged")
	}
	if cfg.EnableCleanDB {
		log.Warn().Str("path", cfg.APIBasePath+"/cleandb").Msg("database reset endpoint enabled")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
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
			Str("db_driver", cfg.DB.Driver).
			Str("api_base", cfg.APIBasePath).
			Msg("listening")
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

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}

package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mw "github.com/5w1tchy/passwarden/internal/api/middlewares"
	"github.com/5w1tchy/passwarden/internal/api/router"
	"github.com/5w1tchy/passwarden/internal/bootstrap"
	"github.com/5w1tchy/passwarden/internal/config"
	"github.com/5w1tchy/passwarden/internal/logging"
	"github.com/5w1tchy/passwarden/internal/maintenance"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		// logger not built yet
		panic("logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	for _, w := range cfg.HardeningWarnings() {
		log.Warn(w)
	}
	log.Info("starting passwarden", zap.Stringer("config", cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	defer app.Close()

	if app.DB != nil {
		maintenance.StartLookupRetention(ctx, app.DB, cfg.StatsRetentionDays, cfg.StatsRetentionAt, cfg.StatsRetentionTZ, log)
	}

	tb := mw.NewRedisTokenBucket(app.Redis, cfg.RateLimitRPS, cfg.RateLimitBurst, mw.PerClientKey("tb"), log)

	// breach lookups spend upstream quota; cap them per hour as well
	sw := mw.NewRedisSlidingWindow(app.Redis, 3000, 60*time.Minute, mw.PerClientKey("sw"), log)

	api := router.Router(router.Deps{
		Generator:   app.Generator,
		Estimator:   app.Estimator,
		Breach:      app.Breach,
		Hasher:      app.Hasher,
		Redis:       app.Redis,
		Signer:      app.Signer,
		RequireAuth: cfg.RequireAuth,
		Upstream:    sw.Middleware,
	})

	var optionalAuth mw.Middleware
	if app.Signer != nil {
		optionalAuth = mw.OptionalAuth(app.Signer)
	}

	secureMux := mw.Apply(api,
		mw.RequestID,
		mw.Recovery(log),
		mw.AccessLog(log),
		mw.Cors(cfg.CORSOrigins, log),
		mw.SecurityHeaders(cfg.IsProduction()),
		mw.BodySizeLimit(cfg.MaxBodySize),
		optionalAuth,
		tb.Middleware,
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           secureMux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          zap.NewStdLog(log),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server is running", zap.String("addr", cfg.HTTPAddr), zap.Bool("tls", cfg.TLSCertFile != ""))
		if cfg.TLSCertFile != "" {
			errCh <- server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			return
		}
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nijaru/yt-filter/auth"
	"github.com/nijaru/yt-filter/config"
	"github.com/nijaru/yt-filter/handlers"
	"github.com/nijaru/yt-filter/logger"
	"github.com/nijaru/yt-filter/orchestrator"
	"github.com/nijaru/yt-filter/repository/sqlite"
	"github.com/nijaru/yt-filter/services/credits"
	"github.com/nijaru/yt-filter/services/preview"
	"github.com/nijaru/yt-filter/storage"
)

const limiterCleanupInterval = time.Minute

func main() {
	cfg := config.LoadConfig()

	log, logCloser, err := logger.NewLogger(logger.Options{
		Dir:   cfg.LogDir,
		Level: cfg.LogLevel,
		JSON:  cfg.IsProduction(),
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize logger")
	}
	defer logCloser.Close()

	if err := config.ValidateConfig(cfg); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbCfg := sqlite.DefaultDBConfig()
	dbCfg.MaxConnections = cfg.Database.MaxConnections
	db, err := sqlite.InitDB(ctx, cfg.Database.Path, dbCfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Error("Failed to close database")
		}
	}()

	orch := orchestrator.NewClient(orchestrator.Config{
		BaseURL: cfg.Orchestrator.BaseURL,
		APIKey:  cfg.Orchestrator.APIKey,
		Timeout: cfg.Orchestrator.Timeout,
	}, log)

	var archive preview.Archive
	if cfg.Archive.Enabled {
		spaces, err := storage.NewSpacesClient(ctx, storage.SpacesConfig{
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			Region:    cfg.Archive.Region,
			Endpoint:  cfg.Archive.Endpoint,
			Bucket:    cfg.Archive.Bucket,
		})
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize transcript archive")
		}
		archive = spaces
		log.WithField("bucket", cfg.Archive.Bucket).Info("Transcript archive enabled")
	}

	previewSvc := preview.NewService(sqlite.NewVideoRepository(db), orch, archive, log)
	creditSvc := credits.NewService(sqlite.NewCreditRepository(db), log)

	if len(cfg.Auth.Tokens) == 0 {
		log.Warn("No API tokens configured; every /api request will be rejected")
	}

	server := handlers.NewServer(cfg,
		handlers.WithLogger(log),
		handlers.WithServices(previewSvc, creditSvc),
		handlers.WithAuthenticator(auth.NewStaticTokenAuthenticator(cfg.Auth.Tokens)),
		handlers.WithDatabase(db),
	)

	go server.RunLimiterCleanup(ctx, limiterCleanupInterval)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	log.WithFields(logrus.Fields{
		"port":         cfg.ServerPort,
		"env":          cfg.Env,
		"orchestrator": cfg.Orchestrator.BaseURL,
	}).Info("Server started")

	select {
	case err := <-serverErr:
		log.WithError(err).Error("Server failed")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server stopped")
}

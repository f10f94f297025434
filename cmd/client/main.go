package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/cli"
	"github.com/dmitrijs2005/thumbkeeper/internal/client/client"
	"github.com/dmitrijs2005/thumbkeeper/internal/client/config"
	"github.com/dmitrijs2005/thumbkeeper/internal/client/services"
	"github.com/dmitrijs2005/thumbkeeper/internal/logging"
	"github.com/dmitrijs2005/thumbkeeper/internal/s3x"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}
	logger := logging.NewConsoleLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, repos, err := client.OpenDatabase(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	storage, err := s3x.NewStorage(ctx, s3x.Config{
		User:          cfg.S3.User,
		Password:      cfg.S3.Password,
		Bucket:        cfg.S3.Bucket,
		Region:        cfg.S3.Region,
		BaseEndpoint:  cfg.S3.BaseEndpoint,
		PublicBaseURL: cfg.S3.PublicBaseURL,
	})
	if err != nil {
		return fmt.Errorf("storage init error: %w", err)
	}

	auth := client.NewLocalAuthProvider(db, repos, client.LocalAuthConfig{
		SecretKey:         []byte(cfg.SecretKey),
		SessionValidity:   cfg.SessionValidity,
		MinPasswordLength: cfg.MinPasswordLength,
	}, logger.With("module", "auth"))
	defer auth.Close()

	store := services.NewSessionStore(services.Deps{
		Auth:       auth,
		Profiles:   repos.Profiles(db),
		Storage:    storage,
		Thumbnails: repos.Thumbnails(db),
		Logger:     logger.With("module", "session"),
	})
	defer store.Close()

	history := services.NewHistoryRepository(store, repos.Thumbnails(db), logger.With("module", "history"))
	defer history.Close()

	remote := client.NewHTTPGenerator(cfg.GenerateEndpoint, cfg.GenerateRPS, store.AccessToken)
	generator := services.NewGenerator(remote, history, logger.With("module", "generator"))
	defer generator.Close()

	if err := store.Initialize(ctx); err != nil {
		logger.Warn(ctx, "could not restore session", "error", err)
	}

	app := cli.NewApp(cli.Deps{
		Session:    store,
		Profiles:   store.Profiles(),
		History:    history,
		Generator:  generator,
		Downloader: client.NewDownloader(),
		Logger:     logger,
	})
	app.Run(ctx)
	return nil
}

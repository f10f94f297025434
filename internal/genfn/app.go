// Package genfn wires the thumbnail generation service: it builds the
// renderer and image store from config, runs the HTTP server and stops it
// on SIGINT, SIGTERM or SIGQUIT.
package genfn

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/thumbkeeper/internal/genfn/config"
	"github.com/dmitrijs2005/thumbkeeper/internal/genfn/httpapi"
	"github.com/dmitrijs2005/thumbkeeper/internal/genfn/render"
	"github.com/dmitrijs2005/thumbkeeper/internal/logging"
	"github.com/dmitrijs2005/thumbkeeper/internal/s3x"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

// NewLogger returns the JSON logger, or a colored console logger when
// format is "text".
func NewLogger(format, level string) logging.Logger {
	lvl := logging.ParseLevel(level)
	if format == "text" {
		return logging.NewConsoleLogger(os.Stderr, lvl)
	}
	return logging.NewJSONLogger(lvl)
}

// NewRenderer picks the renderer named in c.
func NewRenderer(c *config.Config) (render.Renderer, error) {
	switch c.Renderer {
	case config.RendererPlaceholder:
		return render.NewPlaceholder()
	case config.RendererGemini:
		return render.NewGemini(c.GeminiAPIKey, c.GeminiEndpoint)
	default:
		return nil, fmt.Errorf("unknown renderer %q", c.Renderer)
	}
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := NewLogger(c.LogFormat, c.LogLevel)

	r, err := NewRenderer(c)
	if err != nil {
		return nil, fmt.Errorf("renderer init error: %w", err)
	}

	store, err := s3x.NewStorage(ctx, s3x.Config{
		User:          c.S3User,
		Password:      c.S3Password,
		Bucket:        c.S3Bucket,
		Region:        c.S3Region,
		BaseEndpoint:  c.S3BaseEndpoint,
		PublicBaseURL: c.S3PublicBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	if c.SecretKey == "" {
		logger.Warn(ctx, "secret key is empty, bearer tokens are not checked")
	}

	srv := httpapi.NewServer(httpapi.Options{
		Address:       c.ListenAddr,
		SecretKey:     c.SecretKey,
		RenderTimeout: c.RenderTimeout,
	}, r, store, logger)

	return &App{config: c, logger: logger, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until the server stops.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "renderer", app.config.Renderer)
	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
		return err
	}
	return nil
}

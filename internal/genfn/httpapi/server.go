// Package httpapi exposes the thumbnail generation endpoint over HTTP.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/thumbkeeper/internal/genfn/render"
	"github.com/dmitrijs2005/thumbkeeper/internal/logging"
	"github.com/dmitrijs2005/thumbkeeper/internal/shared"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	maxBodySize     = "64K"
	shutdownTimeout = 10 * time.Second
)

// ImageStore is where rendered thumbnails are written.
type ImageStore interface {
	Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string, upsert bool) error
	PublicURL(path string) string
}

type Options struct {
	Address string
	// SecretKey verifies bearer tokens. Empty disables the check.
	SecretKey     string
	RenderTimeout time.Duration
}

type Server struct {
	address       string
	renderer      render.Renderer
	store         ImageStore
	logger        logging.Logger
	secret        []byte
	renderTimeout time.Duration
	now           func() time.Time
	newKey        func() string
	echo          *echo.Echo
}

func NewServer(opts Options, r render.Renderer, store ImageStore, l logging.Logger) *Server {
	s := &Server{
		address:       opts.Address,
		renderer:      r,
		store:         store,
		logger:        l.With("module", "http_server"),
		secret:        []byte(opts.SecretKey),
		renderTimeout: opts.RenderTimeout,
		now:           time.Now,
		newKey:        newObjectKey,
	}
	s.echo = s.routes()
	return s
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.Recover())
	e.Use(s.requestLogger)
	e.Use(middleware.BodyLimit(maxBodySize))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.POST(shared.GeneratePath, s.generate, s.requireToken)
	return e
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- s.echo.Start(s.address)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

// errorHandler renders every error as the {error} payload clients expect.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}
	if err := c.JSON(code, shared.GenerateResponse{Error: msg}); err != nil {
		s.logger.Error(c.Request().Context(), "write error response", "error", err)
	}
}

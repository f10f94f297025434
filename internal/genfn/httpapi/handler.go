package httpapi

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/thumbkeeper/internal/genfn/render"
	"github.com/dmitrijs2005/thumbkeeper/internal/shared"
	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
)

const objectPrefix = "thumbnails/"

func newObjectKey() string {
	return objectPrefix + ulid.Make().String() + ".png"
}

func (s *Server) generate(c echo.Context) error {
	ctx := c.Request().Context()

	var req shared.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Topic) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "topic is required")
	}

	style := shared.StyleVibrant
	if strings.TrimSpace(req.Style) != "" {
		st, err := shared.ParseStyle(req.Style)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		style = st
	}

	prompt := render.BuildPrompt(req.Topic, req.Context, style)
	userID, _ := UserIDFromContext(ctx)
	log := s.logger.With("user_id", userID, "style", string(style))

	renderCtx := ctx
	if s.renderTimeout > 0 {
		var cancel context.CancelFunc
		renderCtx, cancel = context.WithTimeout(ctx, s.renderTimeout)
		defer cancel()
	}

	img, err := s.renderer.Render(renderCtx, prompt)
	if err != nil {
		log.Error(ctx, "render failed", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to generate image: "+err.Error())
	}

	key := s.newKey()
	if err := s.store.Upload(ctx, key, bytes.NewReader(img), int64(len(img)), "image/png", false); err != nil {
		log.Error(ctx, "store image failed", "key", key, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store image")
	}

	log.Info(ctx, "thumbnail generated", "key", key, "bytes", len(img))
	return c.JSON(http.StatusOK, shared.GenerateResponse{ImageURL: s.store.PublicURL(key)})
}

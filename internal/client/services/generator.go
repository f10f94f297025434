package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/client"
	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
	"github.com/dmitrijs2005/thumbkeeper/internal/common"
	"github.com/dmitrijs2005/thumbkeeper/internal/logging"
	"github.com/dmitrijs2005/thumbkeeper/internal/shared"
)

// HistorySaver persists a successful generation. HistoryRepository
// implements it.
type HistorySaver interface {
	Save(ctx context.Context, imageURL, topic, topicContext string, style models.Style) error
}

// Generator runs thumbnail generations and keeps the in-session gallery,
// newest first. The gallery is not persisted.
type Generator struct {
	remote client.Generator
	saver  HistorySaver
	logger logging.Logger

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	inFlight atomic.Int32

	mu      sync.Mutex
	gallery []string
}

func NewGenerator(remote client.Generator, saver HistorySaver, logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Generator{remote: remote, saver: saver, logger: logger, baseCtx: ctx, cancel: cancel}
}

// Generate asks the endpoint for a thumbnail. On success the URL is
// prepended to the gallery and saved to the history in the background.
// Failures are *common.ValidationError or *common.GenerationError and leave
// the gallery unchanged. Concurrent calls are not serialized.
func (g *Generator) Generate(ctx context.Context, topic, topicContext string, style models.Style) (string, error) {
	if err := ValidateTopic(topic); err != nil {
		return "", err
	}
	style, err := models.ParseStyle(string(style))
	if err != nil {
		return "", &common.ValidationError{Field: "style", Message: err.Error()}
	}

	g.inFlight.Add(1)
	defer g.inFlight.Add(-1)

	resp, err := g.remote.Generate(ctx, shared.GenerateRequest{Topic: topic, Context: topicContext, Style: string(style)})
	switch {
	case err != nil:
		return "", &common.GenerationError{Message: fmt.Sprintf("Failed to generate thumbnail: %v", err), Err: err}
	case resp == nil:
		return "", &common.GenerationError{Message: common.ErrNoImageReturned.Error(), Err: common.ErrNoImageReturned}
	case resp.Error != "":
		return "", &common.GenerationError{Message: resp.Error}
	case resp.ImageURL == "":
		return "", &common.GenerationError{Message: common.ErrNoImageReturned.Error(), Err: common.ErrNoImageReturned}
	}

	url := resp.ImageURL
	g.mu.Lock()
	g.gallery = append([]string{url}, g.gallery...)
	g.mu.Unlock()

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		if err := g.saver.Save(g.baseCtx, url, topic, topicContext, style); err != nil {
			g.logger.Warn(g.baseCtx, "failed to save thumbnail to history", "error", err)
		}
	}()
	return url, nil
}

// IsGenerating reports whether any generation is in flight.
func (g *Generator) IsGenerating() bool {
	return g.inFlight.Load() > 0
}

// Gallery returns the session's generated URLs, newest first.
func (g *Generator) Gallery() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.gallery))
	copy(out, g.gallery)
	return out
}

// Wait blocks until pending history saves finish.
func (g *Generator) Wait() {
	g.wg.Wait()
}

// Close waits for pending saves, then cancels those still blocked.
func (g *Generator) Close() {
	g.wg.Wait()
	g.cancel()
}

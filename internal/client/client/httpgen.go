package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/thumbkeeper/internal/common"
	"github.com/dmitrijs2005/thumbkeeper/internal/netx"
	"github.com/dmitrijs2005/thumbkeeper/internal/shared"
	"golang.org/x/time/rate"
)

// TokenSource returns the bearer token for the current session, or "".
type TokenSource func() string

// HTTPGenerator calls the generation function service over HTTP.
type HTTPGenerator struct {
	url     string
	token   TokenSource
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPGenerator targets endpoint, the service base URL. rps limits call
// rate; zero or less disables throttling.
func NewHTTPGenerator(endpoint string, rps float64, token TokenSource) *HTTPGenerator {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &HTTPGenerator{
		url:     strings.TrimRight(endpoint, "/") + shared.GeneratePath,
		token:   token,
		client:  &http.Client{Timeout: 2 * time.Minute},
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (g *HTTPGenerator) Generate(ctx context.Context, req shared.GenerateRequest) (*shared.GenerateResponse, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	headers := map[string]string{}
	if g.token != nil {
		if t := g.token(); t != "" {
			headers[common.AuthorizationHeaderName] = "Bearer " + t
		}
	}

	var resp shared.GenerateResponse
	err := netx.PostJSON(ctx, g.client, g.url, headers, req, &resp)

	var se *netx.StatusError
	if errors.As(err, &se) && resp.Error != "" {
		return &resp, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return &resp, nil
}

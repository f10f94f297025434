package render

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/thumbkeeper/internal/netx"
)

// DefaultGeminiEndpoint is the image-capable generateContent endpoint.
const DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash-image:generateContent"

var (
	ErrMissingAPIKey = errors.New("gemini api key is not set")
	ErrNoImage       = errors.New("no image in API response")
)

type geminiRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type imageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type generationConfig struct {
	ResponseModalities []string     `json:"responseModalities,omitempty"`
	ImageConfig        *imageConfig `json:"imageConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []candidate `json:"candidates"`
	Error      *apiError   `json:"error,omitempty"`
}

type candidate struct {
	Content contentResponse `json:"content"`
}

type contentResponse struct {
	Parts []partResponse `json:"parts"`
}

type partResponse struct {
	Text       string          `json:"text,omitempty"`
	InlineData *inlineDataResp `json:"inlineData,omitempty"`
}

type inlineDataResp struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Gemini renders thumbnails with the Gemini image API and fits the result
// to the thumbnail size.
type Gemini struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewGemini(apiKey, endpoint string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if endpoint == "" {
		endpoint = DefaultGeminiEndpoint
	}
	return &Gemini{
		apiKey:     apiKey,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}, nil
}

func (g *Gemini) Render(ctx context.Context, p Prompt) ([]byte, error) {
	req := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: p.Text}}}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
			ImageConfig:        &imageConfig{AspectRatio: "16:9"},
		},
	}

	var resp geminiResponse
	err := netx.PostJSON(ctx, g.httpClient, g.endpoint, map[string]string{"x-goog-api-key": g.apiKey}, req, &resp)
	if resp.Error != nil {
		return nil, fmt.Errorf("gemini API error: %s", resp.Error.Message)
	}
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}

	for _, c := range resp.Candidates {
		for _, part := range c.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("decode image: %w", err)
			}
			return fitThumbnail(data)
		}
	}
	return nil, ErrNoImage
}

// Package config handles configuration for the generation service:
// defaults, GENFN_* environment (optionally from a dotenv file), a JSON
// overlay and command-line flags, applied in that order.
package config

import (
	"os"
	"time"
)

// Renderer names.
const (
	RendererPlaceholder = "placeholder"
	RendererGemini      = "gemini"
)

// Config holds runtime settings for the generation service.
//
// Fields:
//   - ListenAddr: bind address of the HTTP endpoint.
//   - SecretKey: HMAC secret the client signs session tokens with. Empty
//     disables bearer token checks.
//   - Renderer: RendererPlaceholder or RendererGemini.
//   - RenderTimeout: upper bound for one render call.
//   - S3*: bucket the rendered images are stored in.
//   - LogFormat: "json" or "text".
type Config struct {
	ListenAddr      string
	SecretKey       string
	Renderer        string
	GeminiAPIKey    string
	GeminiEndpoint  string
	RenderTimeout   time.Duration
	S3User          string
	S3Password      string
	S3Bucket        string
	S3Region        string
	S3BaseEndpoint  string
	S3PublicBaseURL string
	LogFormat       string
	LogLevel        string
}

// LoadDefaults populates Config with development defaults matching the
// client's.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8081"
	c.SecretKey = "dev-secret-change-me"
	c.Renderer = RendererPlaceholder
	c.RenderTimeout = 90 * time.Second
	c.S3User = "minioadmin"
	c.S3Password = "minioadmin"
	c.S3Bucket = "thumbnails"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://localhost:9000"
	c.LogFormat = "json"
	c.LogLevel = "info"
}

// Load builds a Config from args (without the program name).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, args, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/thumbkeeper/internal/flagx"
	"github.com/dmitrijs2005/thumbkeeper/internal/timex"
)

// JsonConfig is the JSON file layout. Empty fields keep earlier values.
type JsonConfig struct {
	ListenAddr      string          `json:"listen_addr"`
	SecretKey       *string         `json:"secret_key"`
	Renderer        string          `json:"renderer"`
	GeminiAPIKey    string          `json:"gemini_api_key"`
	GeminiEndpoint  string          `json:"gemini_endpoint"`
	RenderTimeout   *timex.Duration `json:"render_timeout"`
	S3User          string          `json:"s3_user"`
	S3Password      string          `json:"s3_password"`
	S3Bucket        string          `json:"s3_bucket"`
	S3Region        string          `json:"s3_region"`
	S3BaseEndpoint  string          `json:"s3_base_endpoint"`
	S3PublicBaseURL string          `json:"s3_public_base_url"`
	LogFormat       string          `json:"log_format"`
	LogLevel        string          `json:"log_level"`
}

func parseJson(cfg *Config, args []string) error {
	path, _ := flagx.ConfigFiles(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var c JsonConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.ListenAddr, c.ListenAddr)
	// an explicit "" turns token checks off
	if c.SecretKey != nil {
		cfg.SecretKey = *c.SecretKey
	}
	set(&cfg.Renderer, c.Renderer)
	set(&cfg.GeminiAPIKey, c.GeminiAPIKey)
	set(&cfg.GeminiEndpoint, c.GeminiEndpoint)
	if c.RenderTimeout != nil {
		cfg.RenderTimeout = c.RenderTimeout.Duration
	}
	set(&cfg.S3User, c.S3User)
	set(&cfg.S3Password, c.S3Password)
	set(&cfg.S3Bucket, c.S3Bucket)
	set(&cfg.S3Region, c.S3Region)
	set(&cfg.S3BaseEndpoint, c.S3BaseEndpoint)
	set(&cfg.S3PublicBaseURL, c.S3PublicBaseURL)
	set(&cfg.LogFormat, c.LogFormat)
	set(&cfg.LogLevel, c.LogLevel)
	return nil
}

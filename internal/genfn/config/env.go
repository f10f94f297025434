package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/dmitrijs2005/thumbkeeper/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "GENFN_"

// parseEnv applies GENFN_* variables. The process environment wins over
// the dotenv file named by -env (or ./.env when present).
func parseEnv(cfg *Config, args []string, lookup func(string) (string, bool)) error {
	_, path := flagx.ConfigFiles(args)
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	file, err := godotenv.Read(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read env file %s: %w", path, err)
		}
		file = map[string]string{}
	}

	get := func(name string) (string, bool) {
		if v, ok := lookup(envPrefix + name); ok {
			return v, true
		}
		v, ok := file[envPrefix+name]
		return v, ok
	}

	for name, dst := range map[string]*string{
		"LISTEN_ADDR":     &cfg.ListenAddr,
		"SECRET_KEY":      &cfg.SecretKey,
		"RENDERER":        &cfg.Renderer,
		"GEMINI_API_KEY":  &cfg.GeminiAPIKey,
		"GEMINI_ENDPOINT": &cfg.GeminiEndpoint,
		"S3_USER":         &cfg.S3User,
		"S3_PASSWORD":     &cfg.S3Password,
		"S3_BUCKET":       &cfg.S3Bucket,
		"S3_REGION":       &cfg.S3Region,
		"S3_ENDPOINT":     &cfg.S3BaseEndpoint,
		"S3_PUBLIC_URL":   &cfg.S3PublicBaseURL,
		"LOG_FORMAT":      &cfg.LogFormat,
		"LOG_LEVEL":       &cfg.LogLevel,
	} {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	if v, ok := get("RENDER_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sRENDER_TIMEOUT: %w", envPrefix, err)
		}
		cfg.RenderTimeout = d
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/dmitrijs2005/thumbkeeper/internal/flagx"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the client reads.
const EnvPrefix = "THUMBKEEPER_"

const defaultEnvFile = ".env"

type lookupFunc func(key string) (string, bool)

// parseEnv overlays cfg with THUMBKEEPER_* variables. Values come from the
// dotenv file (-env, or ./.env when present) and the process environment,
// the latter taking precedence. An explicitly named dotenv file must exist.
func parseEnv(cfg *Config, args []string, lookup lookupFunc) error {
	_, envPath := flagx.ConfigFiles(args)

	fileVars := map[string]string{}
	path := envPath
	if path == "" {
		path = defaultEnvFile
	}
	vars, err := godotenv.Read(path)
	switch {
	case err == nil:
		fileVars = vars
	case envPath == "" && errors.Is(err, fs.ErrNotExist):
	default:
		return fmt.Errorf("read env file %s: %w", path, err)
	}

	get := func(name string) (string, bool) {
		key := EnvPrefix + name
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}

	strs := map[string]*string{
		"DATABASE_DRIVER":   &cfg.DatabaseDriver,
		"DATABASE_DSN":      &cfg.DatabaseDSN,
		"SECRET_KEY":        &cfg.SecretKey,
		"S3_USER":           &cfg.S3.User,
		"S3_PASSWORD":       &cfg.S3.Password,
		"S3_BUCKET":         &cfg.S3.Bucket,
		"S3_REGION":         &cfg.S3.Region,
		"S3_ENDPOINT":       &cfg.S3.BaseEndpoint,
		"S3_PUBLIC_URL":     &cfg.S3.PublicBaseURL,
		"GENERATE_ENDPOINT": &cfg.GenerateEndpoint,
		"LOG_LEVEL":         &cfg.LogLevel,
	}
	for name, dst := range strs {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	if v, ok := get("SESSION_VALIDITY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sSESSION_VALIDITY: %w", EnvPrefix, err)
		}
		cfg.SessionValidity = d
	}
	if v, ok := get("MIN_PASSWORD_LENGTH"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sMIN_PASSWORD_LENGTH: %w", EnvPrefix, err)
		}
		cfg.MinPasswordLength = n
	}
	if v, ok := get("GENERATE_RPS"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sGENERATE_RPS: %w", EnvPrefix, err)
		}
		cfg.GenerateRPS = f
	}
	return nil
}

package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/thumbkeeper/internal/flagx"
	"github.com/dmitrijs2005/thumbkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// zero-valued fields left out of the file keep their earlier value.
type JsonConfig struct {
	DatabaseDriver    string          `json:"database_driver"`
	DatabaseDSN       string          `json:"database_dsn"`
	SecretKey         string          `json:"secret_key"`
	SessionValidity   *timex.Duration `json:"session_validity"`
	MinPasswordLength int             `json:"min_password_length"`
	S3                *JsonS3Config   `json:"s3"`
	GenerateEndpoint  string          `json:"generate_endpoint"`
	GenerateRPS       *float64        `json:"generate_rps"`
	LogLevel          string          `json:"log_level"`
}

type JsonS3Config struct {
	User          string `json:"user"`
	Password      string `json:"password"`
	Bucket        string `json:"bucket"`
	Region        string `json:"region"`
	BaseEndpoint  string `json:"base_endpoint"`
	PublicBaseURL string `json:"public_base_url"`
}

// parseJson overlays cfg with the file named by -c or -config. Without
// either flag nothing is loaded.
func parseJson(cfg *Config, args []string) error {
	path, _ := flagx.ConfigFiles(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.DatabaseDriver, jc.DatabaseDriver)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.SecretKey, jc.SecretKey)
	if jc.SessionValidity != nil {
		cfg.SessionValidity = jc.SessionValidity.Duration
	}
	if jc.MinPasswordLength > 0 {
		cfg.MinPasswordLength = jc.MinPasswordLength
	}
	if s := jc.S3; s != nil {
		setString(&cfg.S3.User, s.User)
		setString(&cfg.S3.Password, s.Password)
		setString(&cfg.S3.Bucket, s.Bucket)
		setString(&cfg.S3.Region, s.Region)
		setString(&cfg.S3.BaseEndpoint, s.BaseEndpoint)
		setString(&cfg.S3.PublicBaseURL, s.PublicBaseURL)
	}
	setString(&cfg.GenerateEndpoint, jc.GenerateEndpoint)
	if jc.GenerateRPS != nil {
		cfg.GenerateRPS = *jc.GenerateRPS
	}
	setString(&cfg.LogLevel, jc.LogLevel)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

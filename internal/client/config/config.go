package config

import (
	"os"
	"time"
)

// S3Config addresses the avatar bucket.
type S3Config struct {
	User          string
	Password      string
	Bucket        string
	Region        string
	BaseEndpoint  string
	PublicBaseURL string
}

// Config holds runtime settings for the ThumbKeeper client.
//
// Units: SessionValidity is a time.Duration, GenerateRPS is requests per
// second (0 disables throttling).
type Config struct {
	DatabaseDriver    string
	DatabaseDSN       string
	SecretKey         string
	SessionValidity   time.Duration
	MinPasswordLength int
	S3                S3Config
	GenerateEndpoint  string
	GenerateRPS       float64
	LogLevel          string
}

// LoadDefaults populates c with values suitable for a local setup.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:thumbkeeper.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	c.SecretKey = "dev-secret-change-me"
	c.SessionValidity = time.Hour
	c.MinPasswordLength = 6
	c.S3 = S3Config{
		User:         "minioadmin",
		Password:     "minioadmin",
		Bucket:       "avatars",
		Region:       "us-east-1",
		BaseEndpoint: "http://localhost:9000",
	}
	c.GenerateEndpoint = "http://localhost:8081"
	c.GenerateRPS = 1
	c.LogLevel = "info"
}

// Load builds a Config from defaults, then the .env file and THUMBKEEPER_*
// environment, then the JSON file, then flags. Later sources win. args are
// the command-line arguments without the program name.
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

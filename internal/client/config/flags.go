package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/thumbkeeper/internal/flagx"
)

// parseFlags overrides cfg from command-line flags:
//
//	-d string     database driver (sqlite or pgx)
//	-dsn string   database DSN
//	-k string     session signing secret
//	-g string     base URL of the generation endpoint
//	-rps float    generation requests per second, 0 for unlimited
//	-log string   log level (debug, info, warn, error)
//
// Only these flags are taken from args, see flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-dsn", "-k", "-g", "-rps", "-log"})

	fs := flag.NewFlagSet("thumbkeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabaseDriver, "d", cfg.DatabaseDriver, "database driver (sqlite or pgx)")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "session signing secret")
	fs.StringVar(&cfg.GenerateEndpoint, "g", cfg.GenerateEndpoint, "generation endpoint base URL")
	fs.Float64Var(&cfg.GenerateRPS, "rps", cfg.GenerateRPS, "generation requests per second")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level")

	return fs.Parse(args)
}

package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/thumbkeeper/internal/flagx"
)

// parseFlags applies the command-line overrides:
//
//	-a string   listen address (e.g. ":8081")
//	-k string   token signing secret, empty disables auth
//	-r string   renderer (placeholder or gemini)
//	-b string   S3 bucket
//	-e string   S3 base endpoint
//	-t duration render timeout
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-k", "-r", "-b", "-e", "-t"})

	fs := flag.NewFlagSet("genfn", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "listen address")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "token signing secret")
	fs.StringVar(&cfg.Renderer, "r", cfg.Renderer, "renderer")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")
	fs.DurationVar(&cfg.RenderTimeout, "t", cfg.RenderTimeout, "render timeout")

	return fs.Parse(args)
}

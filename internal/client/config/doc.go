// Package config loads runtime configuration for the ThumbKeeper client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. THUMBKEEPER_* variables from the process environment, falling back
//     to a dotenv file (-env path, or ./.env when it exists).
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override everything else.
//
// # JSON schema
//
// Durations use timex.Duration, so "1h" and integer nanoseconds both work:
//
//	{
//	  "database_driver": "pgx",
//	  "database_dsn": "postgres://localhost/thumbkeeper",
//	  "session_validity": "1h",
//	  "s3": {"bucket": "avatars", "base_endpoint": "http://localhost:9000"},
//	  "generate_endpoint": "http://localhost:8081",
//	  "generate_rps": 0.5
//	}
package config

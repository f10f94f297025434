// Package migrations embeds the goose SQL migrations for both supported
// database dialects.
package migrations

import "embed"

// SQLite holds migrations for the modernc.org/sqlite driver.
//
//go:embed sqlite/*.sql
var SQLite embed.FS

// Postgres holds migrations for the pgx driver.
//
//go:embed postgres/*.sql
var Postgres embed.FS

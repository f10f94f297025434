// Package repomanager selects the repository implementations and the
// migration set for the configured SQL dialect.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/thumbkeeper/internal/client/repositories/profiles"
	"github.com/dmitrijs2005/thumbkeeper/internal/client/repositories/thumbnails"
	"github.com/dmitrijs2005/thumbkeeper/internal/client/repositories/users"
	"github.com/dmitrijs2005/thumbkeeper/internal/dbx"
	"github.com/pressly/goose/v3"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

type RepositoryManager interface {
	// DriverName is the database/sql driver to open connections with.
	DriverName() string
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Thumbnails(db dbx.DBTX) thumbnails.Repository
	Metadata(db dbx.DBTX) metadata.Repository
}

// New returns the manager for driver.
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case DriverSQLite, "":
		return &SQLiteRepositoryManager{}, nil
	case DriverPostgres, "postgres":
		return &PostgresRepositoryManager{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// gooseUp is a seam for testing goose.UpContext.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

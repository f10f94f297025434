package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/thumbkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/thumbkeeper/internal/client/repositories/profiles"
	"github.com/dmitrijs2005/thumbkeeper/internal/client/repositories/thumbnails"
	"github.com/dmitrijs2005/thumbkeeper/internal/client/repositories/users"
	"github.com/dmitrijs2005/thumbkeeper/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends repositories backed by modernc.org/sqlite.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) DriverName() string { return DriverSQLite }

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Profiles(db dbx.DBTX) profiles.Repository {
	return profiles.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Thumbnails(db dbx.DBTX) thumbnails.Repository {
	return thumbnails.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Metadata(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// RunMigrations applies the embedded sqlite migrations.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.SQLite)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := gooseUp(ctx, db, "sqlite"); err != nil {
		return fmt.Errorf("migrate sqlite: %w", err)
	}
	return nil
}

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
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends repositories backed by pgx.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) DriverName() string { return DriverPostgres }

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Profiles(db dbx.DBTX) profiles.Repository {
	return profiles.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Thumbnails(db dbx.DBTX) thumbnails.Repository {
	return thumbnails.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Metadata(db dbx.DBTX) metadata.Repository {
	return metadata.NewPostgresRepository(db)
}

// RunMigrations applies the embedded postgres migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Postgres)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := gooseUp(ctx, db, "postgres"); err != nil {
		return fmt.Errorf("migrate postgres: %w", err)
	}
	return nil
}

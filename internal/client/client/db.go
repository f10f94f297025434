package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/repositories/repomanager"
)

// OpenDatabase opens the database for driver and dsn and brings its schema
// up to date.
func OpenDatabase(ctx context.Context, driver, dsn string) (*sql.DB, repomanager.RepositoryManager, error) {
	rm, err := repomanager.New(driver)
	if err != nil {
		return nil, nil, err
	}

	db, err := sql.Open(rm.DriverName(), dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if rm.DriverName() == repomanager.DriverSQLite {
		// one writer; keeps :memory: databases shared across calls
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, rm, nil
}

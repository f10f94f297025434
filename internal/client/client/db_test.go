package client

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestOpenDatabase_SQLiteRunsMigrations(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, rm, err := OpenDatabase(ctx, "sqlite", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.Equal(t, "sqlite", rm.DriverName())
	for _, name := range []string{"goose_db_version", "users", "profiles", "thumbnails", "metadata"} {
		require.True(t, tableExists(t, db, name), name)
	}
}

func TestOpenDatabase_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, _, err := OpenDatabase(ctx, "sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, _, err = OpenDatabase(ctx, "sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestOpenDatabase_UnknownDriver(t *testing.T) {
	_, _, err := OpenDatabase(context.Background(), "oracle", "x")
	require.ErrorContains(t, err, "unsupported database driver")
}

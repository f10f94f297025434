package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/thumbkeeper/internal/common"
	"github.com/dmitrijs2005/thumbkeeper/internal/dbx"
)

type queries struct {
	get    string
	upsert string
	delete string
	clear  string
}

var sqliteQueries = queries{
	get: `SELECT value FROM metadata WHERE key = ?`,
	upsert: `INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
	delete: `DELETE FROM metadata WHERE key = ?`,
	clear:  `DELETE FROM metadata`,
}

var postgresQueries = queries{
	get: `SELECT value FROM metadata WHERE key = $1`,
	upsert: `INSERT INTO metadata (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
	delete: `DELETE FROM metadata WHERE key = $1`,
	clear:  `DELETE FROM metadata`,
}

// Store implements Repository over either SQL dialect.
type Store struct {
	db dbx.DBTX
	q  queries
}

func NewSQLiteRepository(db dbx.DBTX) *Store {
	return &Store{db: db, q: sqliteQueries}
}

func NewPostgresRepository(db dbx.DBTX) *Store {
	return &Store{db: db, q: postgresQueries}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.q.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get metadata %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.q.upsert, key, value); err != nil {
		return fmt.Errorf("set metadata %q: %w", key, err)
	}
	return nil
}

// Delete is a no-op for a missing key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.q.delete, key); err != nil {
		return fmt.Errorf("delete metadata %q: %w", key, err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.q.clear); err != nil {
		return fmt.Errorf("clear metadata: %w", err)
	}
	return nil
}

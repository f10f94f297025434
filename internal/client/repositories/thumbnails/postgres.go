package thumbnails

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
	"github.com/dmitrijs2005/thumbkeeper/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores t; id and created_at come from column defaults.
func (r *PostgresRepository) Insert(ctx context.Context, t models.NewThumbnail) (*models.ThumbnailRecord, error) {
	query :=
		`INSERT INTO thumbnails (user_id, image_url, topic, context, style)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`

	c := nullContext(t.Context)
	rec := &models.ThumbnailRecord{
		UserID:   t.UserID,
		ImageURL: t.ImageURL,
		Topic:    t.Topic,
		Style:    t.Style,
	}
	if c.Valid {
		rec.Context = &c.String
	}

	err := r.db.QueryRowContext(ctx, query, t.UserID, t.ImageURL, t.Topic, c, string(t.Style)).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) ListByUserID(ctx context.Context, userID string) ([]models.ThumbnailRecord, int, error) {
	query :=
		`SELECT id, user_id, image_url, topic, context, style, created_at, COUNT(*) OVER ()
		 FROM thumbnails
		 WHERE user_id = $1
		 ORDER BY created_at DESC, seq DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return scanList(rows)
}

func (r *PostgresRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM thumbnails WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}

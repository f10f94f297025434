package thumbnails

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
	"github.com/dmitrijs2005/thumbkeeper/internal/dbx"
	"github.com/google/uuid"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Insert stores t with a fresh id and the current time. An empty context is
// stored as NULL.
func (r *SQLiteRepository) Insert(ctx context.Context, t models.NewThumbnail) (*models.ThumbnailRecord, error) {
	rec := &models.ThumbnailRecord{
		ID:        uuid.NewString(),
		UserID:    t.UserID,
		ImageURL:  t.ImageURL,
		Topic:     t.Topic,
		Style:     t.Style,
		CreatedAt: time.Now().UTC(),
	}
	c := nullContext(t.Context)
	if c.Valid {
		rec.Context = &c.String
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO thumbnails (id, user_id, image_url, topic, context, style, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.ImageURL, rec.Topic, c, string(rec.Style), rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *SQLiteRepository) ListByUserID(ctx context.Context, userID string) ([]models.ThumbnailRecord, int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, image_url, topic, context, style, created_at, COUNT(*) OVER ()
		FROM thumbnails
		WHERE user_id = ?
		ORDER BY created_at DESC, seq DESC`, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return scanList(rows)
}

func (r *SQLiteRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM thumbnails WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}

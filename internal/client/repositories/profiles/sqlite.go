package profiles

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

func (r *SQLiteRepository) Create(ctx context.Context, p *models.Profile) error {
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt, p.UpdatedAt = now, now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, user_id, email, avatar_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, nullString(&p.Email), p.AvatarURL, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, email, avatar_url, created_at, updated_at
		FROM profiles WHERE user_id = ?`, userID)
	return scanProfile(row)
}

func (r *SQLiteRepository) UpdateByUserID(ctx context.Context, userID string, u models.ProfileUpdate) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET email = COALESCE(?, email),
		    avatar_url = COALESCE(?, avatar_url),
		    updated_at = ?
		WHERE user_id = ?`,
		u.Email, u.AvatarURL, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

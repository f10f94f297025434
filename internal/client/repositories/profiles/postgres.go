package profiles

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

func (r *PostgresRepository) Create(ctx context.Context, p *models.Profile) error {
	query :=
		`INSERT INTO profiles (user_id, email, avatar_url)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, p.UserID, nullString(&p.Email), p.AvatarURL).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, email, avatar_url, created_at, updated_at
		 FROM profiles WHERE user_id = $1`, userID)
	return scanProfile(row)
}

func (r *PostgresRepository) UpdateByUserID(ctx context.Context, userID string, u models.ProfileUpdate) error {
	query :=
		`UPDATE profiles
		 SET email = COALESCE($1, email),
		     avatar_url = COALESCE($2, avatar_url),
		     updated_at = now()
		 WHERE user_id = $3`

	if _, err := r.db.ExecContext(ctx, query, u.Email, u.AvatarURL, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

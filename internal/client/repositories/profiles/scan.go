package profiles

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
	"github.com/dmitrijs2005/thumbkeeper/internal/common"
)

// scanProfile reads one profile row, mapping sql.ErrNoRows to
// common.ErrNotFound.
func scanProfile(row *sql.Row) (*models.Profile, error) {
	var (
		p      models.Profile
		email  sql.NullString
		avatar sql.NullString
	)
	err := row.Scan(&p.ID, &p.UserID, &email, &avatar, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.Email = email.String
	if avatar.Valid {
		p.AvatarURL = &avatar.String
	}
	return &p, nil
}

func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// Package profiles persists user profiles, one row per user keyed by user_id.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
)

// Repository stores profiles. GetByUserID returns common.ErrNotFound for a
// user without a profile row. UpdateByUserID and DeleteByUserID on a missing
// row are no-ops.
type Repository interface {
	Create(ctx context.Context, p *models.Profile) error
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	UpdateByUserID(ctx context.Context, userID string, u models.ProfileUpdate) error
	DeleteByUserID(ctx context.Context, userID string) error
}

// Package thumbnails persists generation history records.
package thumbnails

import (
	"context"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
)

// Repository stores thumbnail records. ListByUserID returns records newest
// first; records sharing a creation time come back in reverse insertion
// order. The count is exact.
type Repository interface {
	Insert(ctx context.Context, t models.NewThumbnail) (*models.ThumbnailRecord, error)
	ListByUserID(ctx context.Context, userID string) ([]models.ThumbnailRecord, int, error)
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
}

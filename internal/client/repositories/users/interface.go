// Package users persists the local auth provider's accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
)

// Repository stores accounts. Lookups of unknown accounts return
// common.ErrNotFound; creating a duplicate email returns
// common.ErrAlreadyExists.
type Repository interface {
	Create(ctx context.Context, a *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
}

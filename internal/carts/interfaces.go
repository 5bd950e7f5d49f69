package carts

import (
	"context"

	"github.com/mvillalba/verduleria-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines read access over the storefront cart tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id int64) (*models.Cart, error)
}

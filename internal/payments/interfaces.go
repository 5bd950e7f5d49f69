package payments

import (
	"context"

	"github.com/mvillalba/verduleria-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the processed_payments guard
// table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Exists(ctx context.Context, paymentID string) (bool, error)
	Insert(ctx context.Context, payment *models.ProcessedPayment) error
}

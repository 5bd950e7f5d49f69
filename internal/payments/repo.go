package payments

import (
	"context"

	"github.com/mvillalba/verduleria-backend/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a processed payments repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Exists(ctx context.Context, paymentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProcessedPayment{}).
		Where("payment_id = ?", paymentID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Insert(ctx context.Context, payment *models.ProcessedPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

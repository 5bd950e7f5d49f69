package customers

import (
	"context"

	"github.com/mvillalba/verduleria-backend/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a directory repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindUserByTelegramID(ctx context.Context, telegramID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("telegram_id = ?", telegramID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindWorkerByTelegramID(ctx context.Context, telegramID string) (*models.Worker, error) {
	var worker models.Worker
	err := r.db.WithContext(ctx).
		Where("telegram_id = ?", telegramID).
		First(&worker).Error
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

package customers

import (
	"context"

	"github.com/mvillalba/verduleria-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines directory reads over the users and trabajadores tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindUserByTelegramID(ctx context.Context, telegramID string) (*models.User, error)
	FindWorkerByTelegramID(ctx context.Context, telegramID string) (*models.Worker, error)
}

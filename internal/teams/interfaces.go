package teams

import (
	"context"

	"github.com/mvillalba/verduleria-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the equipos table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, team *models.Team) (*models.Team, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*models.Team, error)
	FindByWorker(ctx context.Context, telegramID string) (*models.Team, error)
	ListWithWorkload(ctx context.Context) ([]TeamWorkload, error)
}

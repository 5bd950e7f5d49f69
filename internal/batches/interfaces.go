package batches

import (
	"context"

	"github.com/mvillalba/verduleria-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the conjuntos table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, batch *models.Batch) (*models.Batch, error)
	FindLatest(ctx context.Context) (*models.Batch, error)
	FindByID(ctx context.Context, id int64) (*models.Batch, error)
	FindByNumber(ctx context.Context, number int64) (*models.Batch, error)
	Delete(ctx context.Context, id int64) error
	ListNumbers(ctx context.Context) ([]int64, error)
	SetTeam(ctx context.Context, batchID int64, teamID *int64) error
	ListUnassigned(ctx context.Context) ([]BatchSummary, error)
	ListByTeam(ctx context.Context, teamID int64) ([]BatchSummary, error)
	ListOpen(ctx context.Context) ([]BatchSummary, error)
	SummaryByNumber(ctx context.Context, number int64) (*BatchSummary, error)
}

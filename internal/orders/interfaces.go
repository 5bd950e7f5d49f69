package orders

import (
	"context"
	"time"

	"github.com/mvillalba/verduleria-backend/pkg/db/models"
	"github.com/mvillalba/verduleria-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the orders table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id int64) (*models.Order, error)
	FindPendingByCode(ctx context.Context, code string) (*models.Order, error)
	CountPendingByBatch(ctx context.Context, batchID int64) (int64, error)
	MarkDelivered(ctx context.Context, orderID int64, at time.Time) error
	ListByCustomer(ctx context.Context, telegramID string, status *enums.OrderStatus, limit int) ([]models.Order, error)
	ListByBatch(ctx context.Context, batchID int64) ([]models.Order, error)
}

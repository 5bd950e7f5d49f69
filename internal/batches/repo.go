package batches

import (
	"context"

	"github.com/mvillalba/verduleria-backend/pkg/db/models"
	"github.com/mvillalba/verduleria-backend/pkg/enums"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a batches repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, batch *models.Batch) (*models.Batch, error) {
	if err := r.db.WithContext(ctx).Create(batch).Error; err != nil {
		return nil, err
	}
	return batch, nil
}

// FindLatest returns the most recently created batch. Earlier batches are
// never reused for placement even when deliveries free up capacity.
func (r *repository) FindLatest(ctx context.Context) (*models.Batch, error) {
	var batch models.Batch
	err := r.db.WithContext(ctx).
		Order("id DESC").
		First(&batch).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Batch, error) {
	var batch models.Batch
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&batch).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *repository) FindByNumber(ctx context.Context, number int64) (*models.Batch, error) {
	var batch models.Batch
	err := r.db.WithContext(ctx).
		Where("numero_conjunto = ?", number).
		First(&batch).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Batch{}).Error
}

func (r *repository) ListNumbers(ctx context.Context) ([]int64, error) {
	var numbers []int64
	err := r.db.WithContext(ctx).
		Model(&models.Batch{}).
		Order("numero_conjunto ASC").
		Pluck("numero_conjunto", &numbers).Error
	return numbers, err
}

func (r *repository) SetTeam(ctx context.Context, batchID int64, teamID *int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Batch{}).
		Where("id = ?", batchID).
		Update("equipo_id", teamID).Error
}

// ListUnassigned returns teamless batches with the lightest pending workload
// first, so assignment picks up the easiest batch.
func (r *repository) ListUnassigned(ctx context.Context) ([]BatchSummary, error) {
	return r.listSummaries(ctx, "c.equipo_id IS NULL", nil, "pending_orders ASC, c.numero_conjunto ASC", false)
}

// ListByTeam returns the team's batches, lightest pending workload first.
func (r *repository) ListByTeam(ctx context.Context, teamID int64) ([]BatchSummary, error) {
	return r.listSummaries(ctx, "c.equipo_id = ?", []any{teamID}, "pending_orders ASC, c.numero_conjunto ASC", false)
}

// ListOpen returns only batches that still have pending orders, in creation
// order. Drained and empty batches are excluded.
func (r *repository) ListOpen(ctx context.Context) ([]BatchSummary, error) {
	return r.listSummaries(ctx, "", nil, "c.id ASC", true)
}

func (r *repository) SummaryByNumber(ctx context.Context, number int64) (*BatchSummary, error) {
	rows, err := r.listSummaries(ctx, "c.numero_conjunto = ?", []any{number}, "c.numero_conjunto ASC", false)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *repository) listSummaries(ctx context.Context, where string, args []any, order string, onlyPending bool) ([]BatchSummary, error) {
	q := r.db.WithContext(ctx).
		Table("conjuntos AS c").
		Select("c.id, c.numero_conjunto, c.equipo_id, COUNT(o.id) AS pending_orders").
		Joins("LEFT JOIN orders o ON o.conjunto_id = c.id AND o.status = ?", enums.OrderStatusPending).
		Group("c.id, c.numero_conjunto, c.equipo_id").
		Order(order)
	if where != "" {
		q = q.Where(where, args...)
	}
	if onlyPending {
		q = q.Having("COUNT(o.id) > 0")
	}
	var rows []BatchSummary
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

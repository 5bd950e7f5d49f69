package teams

import (
	"context"

	"github.com/mvillalba/verduleria-backend/pkg/db/models"
	"github.com/mvillalba/verduleria-backend/pkg/enums"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a teams repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, team *models.Team) (*models.Team, error) {
	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		return nil, err
	}
	return team, nil
}

// Delete removes the team row only. Batches keep their equipo_id reference;
// readers render a placeholder for dangling assignments.
func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Team{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// FindByWorker matches either slot. A worker on several teams gets the
// oldest one.
func (r *repository) FindByWorker(ctx context.Context, telegramID string) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).
		Where("trabajador1 = ? OR trabajador2 = ?", telegramID, telegramID).
		Order("id ASC").
		First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *repository) ListWithWorkload(ctx context.Context) ([]TeamWorkload, error) {
	var rows []TeamWorkload
	err := r.db.WithContext(ctx).
		Table("equipos AS e").
		Select("e.id, e.trabajador1, e.trabajador2, COUNT(o.id) AS pending_orders").
		Joins("LEFT JOIN conjuntos c ON c.equipo_id = e.id").
		Joins("LEFT JOIN orders o ON o.conjunto_id = c.id AND o.status = ?", enums.OrderStatusPending).
		Group("e.id, e.trabajador1, e.trabajador2").
		Order("pending_orders ASC, e.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

package deliveries

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mvillalba/verduleria-backend/internal/orders"
	"github.com/mvillalba/verduleria-backend/pkg/db/models"
	"github.com/mvillalba/verduleria-backend/pkg/enums"
	pkgerrors "github.com/mvillalba/verduleria-backend/pkg/errors"
	"github.com/mvillalba/verduleria-backend/pkg/logger"
	"github.com/mvillalba/verduleria-backend/pkg/outbox"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type batchFinalizer interface {
	Finalize(ctx context.Context, tx *gorm.DB, batchID int64) (bool, error)
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service transitions orders to delivered and finalizes drained batches.
type Service interface {
	// ConfirmByCode resolves a pending order by confirmation code. Unknown or
	// already delivered codes return NotFound so the caller can ask again.
	ConfirmByCode(ctx context.Context, code string) (*Confirmation, error)
	// ConfirmByID applies the same transition keyed by order id.
	ConfirmByID(ctx context.Context, orderID int64) (*Confirmation, error)
}

type service struct {
	ordersRepo orders.Repository
	batches    batchFinalizer
	events     eventEmitter
	tx         txRunner
	logg       *logger.Logger
	now        func() time.Time
}

// NewService wires the delivery updater.
func NewService(ordersRepo orders.Repository, batches batchFinalizer, events eventEmitter, tx txRunner, logg *logger.Logger) (Service, error) {
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if batches == nil {
		return nil, fmt.Errorf("batch finalizer required")
	}
	if events == nil {
		return nil, fmt.Errorf("event emitter required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		ordersRepo: ordersRepo,
		batches:    batches,
		events:     events,
		tx:         tx,
		logg:       logg,
		now:        time.Now,
	}, nil
}

func (s *service) ConfirmByCode(ctx context.Context, code string) (*Confirmation, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "confirmation code required")
	}
	return s.confirm(ctx, func(ctx context.Context, repo orders.Repository) (*models.Order, error) {
		return repo.FindPendingByCode(ctx, code)
	})
}

func (s *service) ConfirmByID(ctx context.Context, orderID int64) (*Confirmation, error) {
	if orderID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	return s.confirm(ctx, func(ctx context.Context, repo orders.Repository) (*models.Order, error) {
		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if order.Status != enums.OrderStatusPending {
			return nil, gorm.ErrRecordNotFound
		}
		return order, nil
	})
}

// confirm runs the delivery transition and the batch finalization check in a
// single transaction so a crash cannot leave a delivered order inside a batch
// that was counted as drained.
func (s *service) confirm(ctx context.Context, find func(ctx context.Context, repo orders.Repository) (*models.Order, error)) (*Confirmation, error) {
	var result *Confirmation
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.ordersRepo.WithTx(tx)

		order, err := find(ctx, repo)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "pending order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		deliveredAt := s.now()
		if err := repo.MarkDelivered(ctx, order.ID, deliveredAt); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark delivered")
		}

		finalized, err := s.batches.Finalize(ctx, tx, order.BatchID)
		if err != nil {
			return err
		}

		err = s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderDelivered,
			AggregateType: enums.AggregateOrder,
			AggregateID:   strconv.FormatInt(order.ID, 10),
			Data: OrderDeliveredEvent{
				OrderID:        order.ID,
				CustomerChatID: order.TelegramID,
				BatchID:        order.BatchID,
				DeliveredAt:    deliveredAt,
			},
			Version: 1,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue delivery event")
		}

		if finalized {
			err = s.events.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventBatchFinalized,
				AggregateType: enums.AggregateBatch,
				AggregateID:   strconv.FormatInt(order.BatchID, 10),
				Data: BatchFinalizedEvent{
					BatchID:     order.BatchID,
					FinalizedAt: deliveredAt,
				},
				Version: 1,
			})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue finalize event")
			}
		}

		result = &Confirmation{
			OrderID:            order.ID,
			CustomerTelegramID: order.TelegramID,
			BatchID:            order.BatchID,
			BatchFinalized:     finalized,
			DeliveredAt:        deliveredAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"order_id":        result.OrderID,
			"batch_id":        result.BatchID,
			"batch_finalized": result.BatchFinalized,
		})
		s.logg.Info(logCtx, "order delivered")
	}
	return result, nil
}

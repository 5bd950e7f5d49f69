package deliveries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mvillalba/verduleria-backend/internal/orders"
	"github.com/mvillalba/verduleria-backend/pkg/db/models"
	"github.com/mvillalba/verduleria-backend/pkg/enums"
	pkgerrors "github.com/mvillalba/verduleria-backend/pkg/errors"
	"github.com/mvillalba/verduleria-backend/pkg/outbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubDeliveryOrders struct {
	byID      map[int64]*models.Order
	delivered []int64
}

func (s *stubDeliveryOrders) WithTx(tx *gorm.DB) orders.Repository { return s }

func (s *stubDeliveryOrders) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	return nil, nil
}

func (s *stubDeliveryOrders) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	if order, ok := s.byID[id]; ok {
		return order, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubDeliveryOrders) FindPendingByCode(ctx context.Context, code string) (*models.Order, error) {
	for _, order := range s.byID {
		if order.ConfirmationCode == code && order.Status == enums.OrderStatusPending {
			return order, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubDeliveryOrders) CountPendingByBatch(ctx context.Context, batchID int64) (int64, error) {
	return 0, nil
}

func (s *stubDeliveryOrders) MarkDelivered(ctx context.Context, orderID int64, at time.Time) error {
	s.delivered = append(s.delivered, orderID)
	if order, ok := s.byID[orderID]; ok {
		order.Status = enums.OrderStatusDelivered
		order.DeliveredAt = &at
	}
	return nil
}

func (s *stubDeliveryOrders) ListByCustomer(ctx context.Context, telegramID string, status *enums.OrderStatus, limit int) ([]models.Order, error) {
	return nil, nil
}

func (s *stubDeliveryOrders) ListByBatch(ctx context.Context, batchID int64) ([]models.Order, error) {
	return nil, nil
}

type stubFinalizer struct {
	finalized bool
	calls     []int64
}

func (s *stubFinalizer) Finalize(ctx context.Context, tx *gorm.DB, batchID int64) (bool, error) {
	s.calls = append(s.calls, batchID)
	return s.finalized, nil
}

type stubEmitter struct {
	events []outbox.DomainEvent
}

func (s *stubEmitter) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	s.events = append(s.events, event)
	return nil
}

type stubTxRunner struct {
	db *gorm.DB
}

func (s *stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(s.db)
}

func deliveriesTxHandle(t *testing.T) *gorm.DB {
	t.Helper()
	handle, err := gorm.Open(sqlite.Open("file:deliveries_service_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	return handle
}

func newDeliveryFixture(t *testing.T, finalized bool) (Service, *stubDeliveryOrders, *stubFinalizer, *stubEmitter) {
	t.Helper()

	repo := &stubDeliveryOrders{byID: map[int64]*models.Order{
		11: {ID: 11, CartID: 1, TelegramID: "100", ConfirmationCode: "111111", Status: enums.OrderStatusPending, BatchID: 7},
		12: {ID: 12, CartID: 2, TelegramID: "200", ConfirmationCode: "222222", Status: enums.OrderStatusDelivered, BatchID: 7},
	}}
	finalizer := &stubFinalizer{finalized: finalized}
	emitter := &stubEmitter{}
	svc, err := NewService(repo, finalizer, emitter, &stubTxRunner{db: deliveriesTxHandle(t)}, nil)
	require.NoError(t, err)
	return svc, repo, finalizer, emitter
}

func TestConfirmValidatesInput(t *testing.T) {
	svc, _, _, _ := newDeliveryFixture(t, false)

	_, err := svc.ConfirmByCode(context.Background(), "  ")
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	_, err = svc.ConfirmByID(context.Background(), 0)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestConfirmByCodeUnknownOrDeliveredCode(t *testing.T) {
	svc, _, finalizer, _ := newDeliveryFixture(t, false)

	_, err := svc.ConfirmByCode(context.Background(), "999999")
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())

	// Code 222222 belongs to an already delivered order.
	_, err = svc.ConfirmByCode(context.Background(), "222222")
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())

	assert.Empty(t, finalizer.calls)
}

func TestConfirmByCodeMarksDelivered(t *testing.T) {
	svc, repo, finalizer, emitter := newDeliveryFixture(t, false)

	result, err := svc.ConfirmByCode(context.Background(), "111111")
	require.NoError(t, err)
	assert.Equal(t, int64(11), result.OrderID)
	assert.Equal(t, "100", result.CustomerTelegramID)
	assert.Equal(t, int64(7), result.BatchID)
	assert.False(t, result.BatchFinalized)
	assert.False(t, result.DeliveredAt.IsZero())

	assert.Equal(t, []int64{11}, repo.delivered)
	assert.Equal(t, []int64{7}, finalizer.calls)

	require.Len(t, emitter.events, 1)
	assert.Equal(t, enums.EventOrderDelivered, emitter.events[0].EventType)
	payload, ok := emitter.events[0].Data.(OrderDeliveredEvent)
	require.True(t, ok)
	assert.Equal(t, "100", payload.CustomerChatID)
}

func TestConfirmFinalizesDrainedBatch(t *testing.T) {
	svc, _, _, emitter := newDeliveryFixture(t, true)

	result, err := svc.ConfirmByCode(context.Background(), "111111")
	require.NoError(t, err)
	assert.True(t, result.BatchFinalized)

	require.Len(t, emitter.events, 2)
	assert.Equal(t, enums.EventOrderDelivered, emitter.events[0].EventType)
	assert.Equal(t, enums.EventBatchFinalized, emitter.events[1].EventType)
	assert.Equal(t, enums.AggregateBatch, emitter.events[1].AggregateType)
}

func TestConfirmByIDRejectsNonPendingOrder(t *testing.T) {
	svc, _, _, _ := newDeliveryFixture(t, false)

	_, err := svc.ConfirmByID(context.Background(), 12)
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())

	result, err := svc.ConfirmByID(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, int64(11), result.OrderID)
}

package payments

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/mvillalba/verduleria-backend/internal/carts"
	"github.com/mvillalba/verduleria-backend/internal/orders"
	"github.com/mvillalba/verduleria-backend/pkg/config"
	"github.com/mvillalba/verduleria-backend/pkg/db"
	"github.com/mvillalba/verduleria-backend/pkg/db/models"
	"github.com/mvillalba/verduleria-backend/pkg/enums"
	pkgerrors "github.com/mvillalba/verduleria-backend/pkg/errors"
	"github.com/mvillalba/verduleria-backend/pkg/logger"
	"github.com/mvillalba/verduleria-backend/pkg/outbox"
	"gorm.io/gorm"
)

// maxCodeAttempts bounds transaction retries when a generated confirmation
// code collides with an existing order.
const maxCodeAttempts = 3

const (
	guardScope = "payments"
	guardTTL   = 24 * time.Hour
)

var errDuplicatePayment = errors.New("payment already processed")

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type batchPlacer interface {
	PlaceOrder(ctx context.Context, tx *gorm.DB) (*models.Batch, error)
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// idempotencyGuard is a best-effort duplicate detector in front of the
// processed_payments table. Keys are written only after the order commits, so
// a hit is always a true duplicate; the table stays authoritative on a miss.
type idempotencyGuard interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	IdempotencyKey(scope, id string) string
}

// Service turns approved payment webhooks into orders exactly once.
type Service interface {
	Process(ctx context.Context, input PaymentInput) (*Result, error)
}

type service struct {
	repo       Repository
	ordersRepo orders.Repository
	carts      carts.Service
	batches    batchPlacer
	events     eventEmitter
	tx         txRunner
	guard      idempotencyGuard
	recipients config.NotificationsConfig
	logg       *logger.Logger
	codeFn     func() string
}

// NewService wires payment intake with its collaborators.
func NewService(
	repo Repository,
	ordersRepo orders.Repository,
	cartsSvc carts.Service,
	batches batchPlacer,
	events eventEmitter,
	tx txRunner,
	guard idempotencyGuard,
	recipients config.NotificationsConfig,
	logg *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if cartsSvc == nil {
		return nil, fmt.Errorf("carts service required")
	}
	if batches == nil {
		return nil, fmt.Errorf("batch placer required")
	}
	if events == nil {
		return nil, fmt.Errorf("event emitter required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:       repo,
		ordersRepo: ordersRepo,
		carts:      cartsSvc,
		batches:    batches,
		events:     events,
		tx:         tx,
		guard:      guard,
		recipients: recipients,
		logg:       logg,
		codeFn:     randomConfirmationCode,
	}, nil
}

// Process handles one webhook event. Non-approved statuses are acknowledged
// without side effects. Replays of an already processed payment id return a
// duplicate result and change nothing.
func (s *service) Process(ctx context.Context, input PaymentInput) (*Result, error) {
	if input.PaymentID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment id required")
	}
	if input.CartID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id required")
	}

	if !enums.PaymentStatus(input.Status).IsApproved() {
		return &Result{Outcome: OutcomeIgnored}, nil
	}

	if s.guardHit(ctx, input.PaymentID) {
		return &Result{Outcome: OutcomeDuplicate}, nil
	}

	seen, err := s.repo.Exists(ctx, input.PaymentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check processed payments")
	}
	if seen {
		return &Result{Outcome: OutcomeDuplicate}, nil
	}

	owner, err := s.carts.Owner(ctx, input.CartID)
	if err != nil {
		return nil, err
	}
	lines, total, err := s.carts.Lines(ctx, input.CartID)
	if err != nil {
		return nil, err
	}

	var result *Result
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		result, err = s.createOrder(ctx, input, owner, lines, total.String())
		if err == nil {
			break
		}
		if errors.Is(err, errDuplicatePayment) {
			// Lost the race against a concurrent delivery of the same
			// webhook; the other transaction committed the order.
			return &Result{Outcome: OutcomeDuplicate}, nil
		}
		if db.IsUniqueViolation(err, "confirmation_code") && attempt < maxCodeAttempts {
			continue
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	s.storeGuard(ctx, input.PaymentID)

	if s.logg != nil {
		logCtx := s.logg.WithPaymentID(ctx, input.PaymentID)
		logCtx = s.logg.WithFields(logCtx, map[string]any{
			"order_id":     result.OrderID,
			"batch_number": result.BatchNumber,
		})
		s.logg.Info(logCtx, "payment accepted")
	}
	return result, nil
}

// createOrder runs one full placement attempt in its own transaction. A
// confirmation code collision aborts the whole transaction, so retries start
// over from batch placement.
func (s *service) createOrder(ctx context.Context, input PaymentInput, owner string, lines []carts.Line, total string) (*Result, error) {
	var result *Result
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		batch, err := s.batches.PlaceOrder(ctx, tx)
		if err != nil {
			return err
		}

		code := s.codeFn()
		order, err := s.ordersRepo.WithTx(tx).Create(ctx, &models.Order{
			CartID:           input.CartID,
			TelegramID:       owner,
			ConfirmationCode: code,
			Status:           enums.OrderStatusPending,
			BatchID:          batch.ID,
		})
		if err != nil {
			return err
		}

		err = s.repo.WithTx(tx).Insert(ctx, &models.ProcessedPayment{
			PaymentID: input.PaymentID,
			CartID:    input.CartID,
			OrderID:   order.ID,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "processed_payments") {
				return errDuplicatePayment
			}
			return err
		}

		event := OrderConfirmedEvent{
			OrderID:          order.ID,
			CartID:           input.CartID,
			PaymentID:        input.PaymentID,
			BatchNumber:      batch.Number,
			ConfirmationCode: code,
			CustomerChatID:   owner,
			AdminChatID:      s.recipients.AdminChatID,
			SupplierChatID:   s.recipients.SupplierChatID,
			Total:            total,
			Lines:            lines,
		}
		err = s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderConfirmed,
			AggregateType: enums.AggregateOrder,
			AggregateID:   strconv.FormatInt(order.ID, 10),
			Data:          event,
			Version:       1,
		})
		if err != nil {
			return err
		}

		result = &Result{
			Outcome:          OutcomeCreated,
			OrderID:          order.ID,
			BatchNumber:      batch.Number,
			ConfirmationCode: code,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) guardHit(ctx context.Context, paymentID string) bool {
	if s.guard == nil {
		return false
	}
	value, err := s.guard.Get(ctx, s.guard.IdempotencyKey(guardScope, paymentID))
	return err == nil && value != ""
}

func (s *service) storeGuard(ctx context.Context, paymentID string) {
	if s.guard == nil {
		return
	}
	_ = s.guard.Set(ctx, s.guard.IdempotencyKey(guardScope, paymentID), "1", guardTTL)
}

func randomConfirmationCode() string {
	return strconv.Itoa(100000 + rand.IntN(900000))
}

package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/mvillalba/verduleria-backend/pkg/enums"
	pkgerrors "github.com/mvillalba/verduleria-backend/pkg/errors"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 50
)

// Service exposes customer-facing order reads.
type Service interface {
	CustomerOrders(ctx context.Context, input CustomerOrdersInput) ([]OrderView, error)
}

type service struct {
	repo Repository
}

// NewService builds the customer order history service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CustomerOrders(ctx context.Context, input CustomerOrdersInput) ([]OrderView, error) {
	telegramID := strings.TrimSpace(input.TelegramID)
	if telegramID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}

	var status *enums.OrderStatus
	if raw := strings.TrimSpace(input.Status); raw != "" {
		parsed, err := enums.ParseOrderStatus(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be pending or delivered")
		}
		status = &parsed
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	rows, err := s.repo.ListByCustomer(ctx, telegramID, status, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customer orders")
	}

	views := make([]OrderView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toOrderView(row))
	}
	return views, nil
}

package carts

import (
	"context"
	"errors"
	"fmt"

	"github.com/mvillalba/verduleria-backend/pkg/db/models"
	pkgerrors "github.com/mvillalba/verduleria-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Line is a priced cart line used by manifests and notifications.
type Line struct {
	ProductName string          `json:"productName"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Service exposes cart reads for the delivery pipeline.
type Service interface {
	Owner(ctx context.Context, cartID int64) (string, error)
	Lines(ctx context.Context, cartID int64) ([]Line, decimal.Decimal, error)
}

type service struct {
	repo Repository
}

// NewService builds the cart read service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("carts repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Owner(ctx context.Context, cartID int64) (string, error) {
	cart, err := s.load(ctx, cartID)
	if err != nil {
		return "", err
	}
	return cart.TelegramID, nil
}

// Lines returns the priced cart lines and the cart total. Items whose
// product row is missing keep a placeholder name so the manifest still adds
// up.
func (s *service) Lines(ctx context.Context, cartID int64) ([]Line, decimal.Decimal, error) {
	cart, err := s.load(ctx, cartID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	lines := make([]Line, 0, len(cart.Items))
	total := decimal.Zero
	for _, item := range cart.Items {
		line := Line{
			ProductName: "unknown",
			Quantity:    item.Quantity,
			Subtotal:    decimal.Zero,
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
			line.Unit = item.Product.Unit
			line.Subtotal = item.Product.Price.Mul(item.Quantity)
		}
		total = total.Add(line.Subtotal)
		lines = append(lines, line)
	}
	return lines, total, nil
}

func (s *service) load(ctx context.Context, cartID int64) (*models.Cart, error) {
	if cartID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id required")
	}
	cart, err := s.repo.FindByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return cart, nil
}

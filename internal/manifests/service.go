package manifests

import (
	"context"
	"fmt"
	"strings"

	"github.com/mvillalba/verduleria-backend/internal/batches"
	"github.com/mvillalba/verduleria-backend/internal/carts"
	"github.com/mvillalba/verduleria-backend/internal/customers"
	"github.com/mvillalba/verduleria-backend/internal/orders"
	pkgerrors "github.com/mvillalba/verduleria-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

const timestampLayout = "2006-01-02 15:04"

type batchReader interface {
	FindByNumber(ctx context.Context, number int64) (*batches.BatchSummary, error)
}

type cartReader interface {
	Lines(ctx context.Context, cartID int64) ([]carts.Line, decimal.Decimal, error)
}

type directory interface {
	CustomerProfile(ctx context.Context, telegramID string) customers.CustomerProfile
}

// Service renders the plain-text delivery manifest for a batch.
type Service interface {
	// Render builds the manifest for the batch with the given number. Codes
	// are included only for the admin view; staff manifests omit them.
	Render(ctx context.Context, batchNumber int64, includeCodes bool) (string, error)
}

type service struct {
	batches    batchReader
	ordersRepo orders.Repository
	carts      cartReader
	directory  directory
}

// NewService builds the manifest generator.
func NewService(batchesSvc batchReader, ordersRepo orders.Repository, cartsSvc cartReader, dir directory) (Service, error) {
	if batchesSvc == nil {
		return nil, fmt.Errorf("batch reader required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if cartsSvc == nil {
		return nil, fmt.Errorf("carts service required")
	}
	if dir == nil {
		return nil, fmt.Errorf("customer directory required")
	}
	return &service{batches: batchesSvc, ordersRepo: ordersRepo, carts: cartsSvc, directory: dir}, nil
}

// Render is read-only: it never mutates order or batch state.
func (s *service) Render(ctx context.Context, batchNumber int64, includeCodes bool) (string, error) {
	batch, err := s.batches.FindByNumber(ctx, batchNumber)
	if err != nil {
		return "", err
	}

	rows, err := s.ordersRepo.ListByBatch(ctx, batch.ID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list batch orders")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Conjunto #%d\n", batch.Number)
	fmt.Fprintf(&b, "Pedidos pendientes: %d\n", batch.PendingOrders)

	if len(rows) == 0 {
		b.WriteString("\nSin pedidos.\n")
	}

	for _, order := range rows {
		profile := s.directory.CustomerProfile(ctx, order.TelegramID)

		fmt.Fprintf(&b, "\nPedido #%d (%s)\n", order.ID, order.OrderDate.Format(timestampLayout))
		fmt.Fprintf(&b, "Cliente: %s, %s\n", profile.Name, profile.Address)
		if order.DeliveredAt != nil {
			fmt.Fprintf(&b, "Entregado: %s\n", order.DeliveredAt.Format(timestampLayout))
		}

		lines, total, err := s.carts.Lines(ctx, order.CartID)
		if err != nil {
			// Missing or unreadable cart degrades to an empty item list so
			// the rest of the manifest still renders.
			lines, total = nil, decimal.Zero
		}
		for _, line := range lines {
			unit := line.Unit
			if unit == "" {
				unit = "u"
			}
			fmt.Fprintf(&b, "  - %s: %s %s ($%s)\n", line.ProductName, line.Quantity.String(), unit, line.Subtotal.StringFixed(2))
		}
		fmt.Fprintf(&b, "Total: $%s\n", total.StringFixed(2))

		if includeCodes {
			fmt.Fprintf(&b, "Codigo: %s\n", order.ConfirmationCode)
		}
	}

	fmt.Fprintf(&b, "\nPedidos pendientes: %d\n", batch.PendingOrders)
	return b.String(), nil
}

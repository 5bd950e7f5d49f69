package orders

import (
	"time"

	"github.com/mvillalba/verduleria-backend/pkg/db/models"
	"github.com/mvillalba/verduleria-backend/pkg/enums"
)

// CustomerOrdersInput filters a customer's order history.
type CustomerOrdersInput struct {
	TelegramID string
	Status     string
	Limit      int
}

// OrderView is the read shape returned to customer-facing endpoints.
type OrderView struct {
	ID               int64             `json:"id"`
	CartID           int64             `json:"cartId"`
	ConfirmationCode string            `json:"confirmationCode"`
	Status           enums.OrderStatus `json:"status"`
	BatchID          int64             `json:"batchId"`
	OrderDate        time.Time         `json:"orderDate"`
	DeliveredAt      *time.Time        `json:"deliveredAt,omitempty"`
}

func toOrderView(order models.Order) OrderView {
	return OrderView{
		ID:               order.ID,
		CartID:           order.CartID,
		ConfirmationCode: order.ConfirmationCode,
		Status:           order.Status,
		BatchID:          order.BatchID,
		OrderDate:        order.OrderDate,
		DeliveredAt:      order.DeliveredAt,
	}
}

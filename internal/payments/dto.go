package payments

import (
	"github.com/mvillalba/verduleria-backend/internal/carts"
)

// Outcome summarizes what payment intake did with an event.
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeIgnored   Outcome = "ignored"
)

// PaymentInput is the normalized webhook event handed to intake.
type PaymentInput struct {
	PaymentID string
	Status    string
	CartID    int64
}

// Result reports the intake outcome. Order fields are only set for
// OutcomeCreated.
type Result struct {
	Outcome          Outcome `json:"outcome"`
	OrderID          int64   `json:"orderId,omitempty"`
	BatchNumber      int64   `json:"batchNumber,omitempty"`
	ConfirmationCode string  `json:"confirmationCode,omitempty"`
}

// OrderConfirmedEvent is the outbox payload fanned out to the customer, the
// admin channel and the supplier channel.
type OrderConfirmedEvent struct {
	OrderID          int64        `json:"order_id"`
	CartID           int64        `json:"cart_id"`
	PaymentID        string       `json:"payment_id"`
	BatchNumber      int64        `json:"batch_number"`
	ConfirmationCode string       `json:"confirmation_code"`
	CustomerChatID   string       `json:"customer_chat_id"`
	AdminChatID      string       `json:"admin_chat_id"`
	SupplierChatID   string       `json:"supplier_chat_id"`
	Total            string       `json:"total"`
	Lines            []carts.Line `json:"lines"`
}

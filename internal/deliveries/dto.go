package deliveries

import "time"

// Confirmation reports the outcome of a delivery transition so the caller can
// notify the customer.
type Confirmation struct {
	OrderID            int64     `json:"orderId"`
	CustomerTelegramID string    `json:"customerTelegramId"`
	BatchID            int64     `json:"batchId"`
	BatchFinalized     bool      `json:"batchFinalized"`
	DeliveredAt        time.Time `json:"deliveredAt"`
}

// OrderDeliveredEvent is the outbox payload for a completed delivery.
type OrderDeliveredEvent struct {
	OrderID        int64     `json:"order_id"`
	CustomerChatID string    `json:"customer_chat_id"`
	BatchID        int64     `json:"batch_id"`
	DeliveredAt    time.Time `json:"delivered_at"`
}

// BatchFinalizedEvent is the outbox payload emitted when a drained batch is
// deleted.
type BatchFinalizedEvent struct {
	BatchID     int64     `json:"batch_id"`
	FinalizedAt time.Time `json:"finalized_at"`
}

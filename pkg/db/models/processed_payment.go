package models

import "time"

// ProcessedPayment records a payment id that already produced an order. The
// row is inserted in the same transaction as the order so the dedup guard
// survives restarts and works across instances.
type ProcessedPayment struct {
	PaymentID string    `gorm:"column:payment_id;primaryKey"`
	CartID    int64     `gorm:"column:cart_id;not null"`
	OrderID   int64     `gorm:"column:order_id;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ProcessedPayment) TableName() string { return "processed_payments" }

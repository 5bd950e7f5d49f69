package models

import (
	"time"

	"github.com/mvillalba/verduleria-backend/pkg/enums"
)

// Order is a paid cart queued for delivery inside a batch.
type Order struct {
	ID               int64             `gorm:"column:id;primaryKey;autoIncrement"`
	CartID           int64             `gorm:"column:cart_id;not null;index"`
	TelegramID       string            `gorm:"column:telegram_id;not null;index"`
	ConfirmationCode string            `gorm:"column:confirmation_code;not null;uniqueIndex"`
	Status           enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	BatchID          int64             `gorm:"column:conjunto_id;not null;index"`
	OrderDate        time.Time         `gorm:"column:order_date;autoCreateTime"`
	DeliveredAt      *time.Time        `gorm:"column:entrega_date"`
}

// TableName keeps the table name fixed regardless of pluralization rules.
func (Order) TableName() string { return "orders" }

package models

import (
	"time"

	"github.com/mvillalba/verduleria-backend/pkg/enums"
)

// Cart is the pre-payment shopping cart owned by a customer chat id.
type Cart struct {
	ID         int64            `gorm:"column:id;primaryKey;autoIncrement"`
	TelegramID string           `gorm:"column:telegram_id;not null;index"`
	Status     enums.CartStatus `gorm:"column:status;type:text;not null;default:'open'"`
	Items      []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
}

func (Cart) TableName() string { return "carts" }

package models

import "github.com/shopspring/decimal"

// CartItem is a single product line inside a cart. Quantity is expressed in
// the product's sale unit.
type CartItem struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	CartID    int64           `gorm:"column:cart_id;not null;index"`
	ProductID int64           `gorm:"column:product_id;not null"`
	Quantity  decimal.Decimal `gorm:"column:cantidad;type:numeric(10,3);not null"`
	Product   *Product        `gorm:"foreignKey:ProductID"`
}

func (CartItem) TableName() string { return "cart_items" }

package models

import "github.com/shopspring/decimal"

// Product is a storefront catalog entry. Price is per sale unit.
type Product struct {
	ID    int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name  string          `gorm:"column:nombre;not null"`
	Price decimal.Decimal `gorm:"column:precio;type:numeric(10,2);not null"`
	Unit  string          `gorm:"column:unidad;not null;default:'kg'"`
}

func (Product) TableName() string { return "products" }

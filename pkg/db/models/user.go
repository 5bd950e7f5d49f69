package models

// User is a storefront customer. Name and address feed delivery manifests.
type User struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement"`
	TelegramID string `gorm:"column:telegram_id;not null;uniqueIndex"`
	Name       string `gorm:"column:nombre;not null"`
	Address    string `gorm:"column:direccion"`
}

func (User) TableName() string { return "users" }

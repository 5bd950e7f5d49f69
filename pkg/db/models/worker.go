package models

// Worker is a "trabajador": a staff member eligible for delivery teams.
type Worker struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name       string `gorm:"column:nombre;not null"`
	TelegramID string `gorm:"column:telegram_id;not null;uniqueIndex"`
}

func (Worker) TableName() string { return "trabajadores" }

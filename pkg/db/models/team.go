package models

// Team is an "equipo": a two-person delivery crew keyed by the workers'
// chat ids. Worker rows may not exist for either slot; display names fall
// back to a placeholder.
type Team struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Worker1 string `gorm:"column:trabajador1;not null;index"`
	Worker2 string `gorm:"column:trabajador2;not null;index"`
}

func (Team) TableName() string { return "equipos" }

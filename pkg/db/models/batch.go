package models

// Batch is a "conjunto": a delivery group holding up to three pending orders.
// EquipoID is nil until an admin assigns the batch to a team.
type Batch struct {
	ID     int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Number int64  `gorm:"column:numero_conjunto;not null;uniqueIndex"`
	TeamID *int64 `gorm:"column:equipo_id;index"`
}

func (Batch) TableName() string { return "conjuntos" }

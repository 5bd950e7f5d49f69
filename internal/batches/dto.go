package batches

// BatchSummary is a batch annotated with its pending order count.
type BatchSummary struct {
	ID            int64  `gorm:"column:id" json:"id"`
	Number        int64  `gorm:"column:numero_conjunto" json:"number"`
	TeamID        *int64 `gorm:"column:equipo_id" json:"teamId,omitempty"`
	PendingOrders int64  `gorm:"column:pending_orders" json:"pendingOrders"`
}

// AssignTeamInput identifies the batch (by its visible number) and the team
// taking it over.
type AssignTeamInput struct {
	BatchNumber int64
	TeamID      int64
}

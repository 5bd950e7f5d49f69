package teams

// TeamView is a team with member display names resolved from the worker
// directory.
type TeamView struct {
	ID          int64  `json:"id"`
	Worker1     string `json:"worker1"`
	Worker2     string `json:"worker2"`
	Worker1Name string `json:"worker1Name"`
	Worker2Name string `json:"worker2Name"`
}

// TeamWorkload is a team annotated with its pending delivery workload.
type TeamWorkload struct {
	ID            int64  `gorm:"column:id" json:"id"`
	Worker1       string `gorm:"column:trabajador1" json:"worker1"`
	Worker2       string `gorm:"column:trabajador2" json:"worker2"`
	Worker1Name   string `gorm:"-" json:"worker1Name"`
	Worker2Name   string `gorm:"-" json:"worker2Name"`
	PendingOrders int64  `gorm:"column:pending_orders" json:"pendingOrders"`
}

// CreateTeamInput carries the two worker chat ids forming a team.
type CreateTeamInput struct {
	Worker1 string `json:"worker1" validate:"required"`
	Worker2 string `json:"worker2" validate:"required"`
}

package enums

// PaymentStatus is the status reported by the payment processor webhook.
// Only approved payments produce orders; everything else is acknowledged
// and dropped.
type PaymentStatus string

const (
	PaymentStatusApproved   PaymentStatus = "approved"
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusRejected   PaymentStatus = "rejected"
	PaymentStatusCancelled  PaymentStatus = "cancelled"
	PaymentStatusInProcess  PaymentStatus = "in_process"
	PaymentStatusRefunded   PaymentStatus = "refunded"
	PaymentStatusChargeback PaymentStatus = "charged_back"
)

// String implements fmt.Stringer.
func (p PaymentStatus) String() string {
	return string(p)
}

// IsApproved reports whether the payment settled successfully.
func (p PaymentStatus) IsApproved() bool {
	return p == PaymentStatusApproved
}

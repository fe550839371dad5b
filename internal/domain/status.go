package domain

// DeliveryStatus represents the lifecycle status of a delivery record.
type DeliveryStatus string

// List of possible delivery statuses
const (
	StatusPending  DeliveryStatus = "pending"
	StatusApproved DeliveryStatus = "approved"
	StatusRejected DeliveryStatus = "rejected"
)

var allowedStatuses = [...]DeliveryStatus{
	StatusPending, StatusApproved, StatusRejected,
}

// Valid checks if the DeliveryStatus is valid
func (s DeliveryStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s DeliveryStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

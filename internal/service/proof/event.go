package proof

import (
	"time"

	"entregas/internal/domain"
)

// StatusEvent describes a delivery entering a new status.
type StatusEvent struct {
	DeliveryID int64
	CourierID  int64
	Company    domain.Company
	Status     domain.DeliveryStatus
	Notes      *string
	OccurredAt time.Time
}

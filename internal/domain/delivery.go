package domain

import "time"

// Delivery - a single proof-of-delivery submission owned by a courier.
type Delivery struct {
	ID        int64
	CourierID int64
	Company   Company
	PhotoURL  string
	Status    DeliveryStatus
	Notes     *string
	CreatedAt time.Time
}

// DeliveryFilter carries optional listing filters. A nil field means
// "do not filter" on that attribute. To is an exclusive upper bound.
type DeliveryFilter struct {
	CourierID *int64
	Company   *Company
	Status    *DeliveryStatus
	From      *time.Time
	To        *time.Time
}

// FortnightStats is a per-day delivery count over a 15-day window.
type FortnightStats struct {
	Start time.Time
	End   time.Time
	Total int
	ByDay map[string]int
}

// StatsWindowDays is the fixed aggregation window length.
const StatsWindowDays = 15

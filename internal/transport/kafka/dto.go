package kafka

import (
	"time"

	"entregas/internal/service/proof"
)

type statusEventDTO struct {
	DeliveryID int64     `json:"delivery_id"`
	CourierID  int64     `json:"courier_id"`
	Company    string    `json:"company"`
	Status     string    `json:"status"`
	Notes      *string   `json:"notes,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func toDTO(ev proof.StatusEvent) statusEventDTO {
	return statusEventDTO{
		DeliveryID: ev.DeliveryID,
		CourierID:  ev.CourierID,
		Company:    string(ev.Company),
		Status:     string(ev.Status),
		Notes:      ev.Notes,
		OccurredAt: ev.OccurredAt,
	}
}

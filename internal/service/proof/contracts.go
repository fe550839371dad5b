package proof

import (
	"context"
	"io"
	"time"

	"entregas/internal/domain"
	"entregas/internal/ports/deliverytx"
)

// deliveryRepository defines storage operations required by the lifecycle layer.
type deliveryRepository interface {
	Insert(ctx context.Context, d *domain.Delivery) error
	List(ctx context.Context, f domain.DeliveryFilter) ([]domain.Delivery, error)
	StatsByDay(ctx context.Context, start, end time.Time, courierID *int64) (map[string]int, error)
	deliverytx.Runner
}

// photoStore persists photo content. Nothing may be written before the
// company and scope checks pass.
type photoStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
}

// eventPublisher emits delivery status events to downstream consumers.
// Publishing is best effort; failures never abort the operation.
type eventPublisher interface {
	PublishStatus(ctx context.Context, ev StatusEvent) error
}

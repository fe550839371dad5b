package deliverytx

import (
	"context"

	"entregas/internal/domain"
)

// Repository is the delivery repository visible inside a transaction.
// GetForUpdate locks the row so concurrent transitions serialize on it.
type Repository interface {
	GetForUpdate(ctx context.Context, id int64) (*domain.Delivery, error)
	UpdateStatus(ctx context.Context, id int64, status domain.DeliveryStatus, notes *string) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}

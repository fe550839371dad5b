package account

import (
	"context"

	"entregas/internal/domain"
)

// userRepository defines storage operations required by the account layer.
type userRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ListCouriers(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, u *domain.User) (int64, error)
	UpdateCompanies(ctx context.Context, id int64, companies []domain.Company) (bool, error)
}

// tokenIssuer mints identity tokens on successful login.
type tokenIssuer interface {
	Issue(userID int64, role domain.Role) (string, error)
}

package handlers

import (
	"context"
	"io"
	"time"

	"entregas/internal/domain"
	"entregas/internal/service/account"
	"entregas/internal/service/proof"
)

type accountUsecase interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	CreateCourier(ctx context.Context, actor *domain.User, in account.CreateCourierInput) (*domain.User, error)
	ListCouriers(ctx context.Context, actor *domain.User) ([]domain.User, error)
	SetCompanies(ctx context.Context, actor *domain.User, courierID int64, raw []string) ([]domain.Company, error)
}

// NewAccountUsecase wires an account Service into an accountUsecase.
func NewAccountUsecase(service *account.Service) accountUsecase {
	return service
}

type proofUsecase interface {
	Upload(ctx context.Context, actor *domain.User, company, originalName string, photo io.Reader) (*domain.Delivery, error)
	List(ctx context.Context, actor *domain.User, f domain.DeliveryFilter) ([]domain.Delivery, error)
	Transition(ctx context.Context, actor *domain.User, id int64, status string, notes *string) (*domain.Delivery, error)
	Stats(ctx context.Context, actor *domain.User, windowStart time.Time) (domain.FortnightStats, error)
}

// NewProofUsecase wires a lifecycle Service into a proofUsecase.
func NewProofUsecase(svc *proof.Service) proofUsecase {
	return svc
}

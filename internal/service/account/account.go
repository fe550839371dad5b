package account

import (
	"context"
	"strings"
	"time"

	"entregas/internal/apperr"
	"entregas/internal/auth"
	"entregas/internal/authz"
	"entregas/internal/domain"
	"entregas/internal/logx"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// Service coordinates identity business logic: login, courier management
// and company scope updates.
type Service struct {
	repo             userRepository
	tokens           tokenIssuer
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates and configures an account Service.
func NewService(r userRepository, tokens tokenIssuer, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{repo: r, tokens: tokens, operationTimeout: timeout, logger: logger}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Login verifies credentials and issues a token. Unknown handle and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, apperr.ErrUnauthorized
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !auth.ComparePasswordAndHash(password, u.PasswordHash) {
		return "", nil, apperr.ErrUnauthorized
	}

	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("login",
		logx.String("event", "login"),
		logx.Int64("user_id", u.ID),
		logx.String("role", string(u.Role)),
	)
	return token, u, nil
}

// GetByID loads the identity behind a validated token.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrNotFound
	}
	return u, nil
}

// CreateCourierInput carries the fields for a new courier account.
type CreateCourierInput struct {
	Name      string
	Username  string
	Password  string
	Companies []string
}

// CreateCourier registers a new courier identity. Admin only.
func (s *Service) CreateCourier(ctx context.Context, actor *domain.User, in CreateCourierInput) (*domain.User, error) {
	if err := authz.Authorize(actor, authz.Action{Kind: authz.ManageCouriers}); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	username := strings.TrimSpace(in.Username)
	if name == "" || len(username) < minUsernameLen || len(in.Password) < minPasswordLen {
		return nil, apperr.ErrInvalid
	}
	companies, ok := domain.NormalizeCompanies(in.Companies)
	if !ok {
		return nil, apperr.ErrInvalid
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Name:         name,
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleCourier,
		Companies:    companies,
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, err := s.repo.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	u.ID = id

	s.logger.Info("courier created",
		logx.String("event", "courier_created"),
		logx.Int64("courier_id", id),
		logx.Int64("admin_id", actor.ID),
	)
	return u, nil
}

// ListCouriers returns all courier accounts. Admin only.
func (s *Service) ListCouriers(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if err := authz.Authorize(actor, authz.Action{Kind: authz.ManageCouriers}); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListCouriers(ctx)
}

// SetCompanies replaces a courier's entire company scope atomically.
// Admin only; an unrecognized code rejects the whole set.
func (s *Service) SetCompanies(ctx context.Context, actor *domain.User, courierID int64, raw []string) ([]domain.Company, error) {
	if err := authz.Authorize(actor, authz.Action{Kind: authz.ManageCouriers}); err != nil {
		return nil, err
	}
	if courierID <= 0 {
		return nil, apperr.ErrInvalid
	}
	companies, ok := domain.NormalizeCompanies(raw)
	if !ok {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	updated, err := s.repo.UpdateCompanies(ctx, courierID, companies)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperr.ErrNotFound
	}

	s.logger.Info("company scope replaced",
		logx.String("event", "scope_replaced"),
		logx.Int64("courier_id", courierID),
		logx.Int("companies", len(companies)),
	)
	return companies, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"entregas/internal/apperr"
	"entregas/internal/domain"
)

// UserRepo represents the identity repository.
type UserRepo struct{ db *pgxpool.Pool }

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *pgxpool.Pool) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, name, username, password_hash, role, companies`

// GetByID returns the user by its ID, or nil when absent.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// GetByUsername returns the user by its login handle, or nil when absent.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username=$1`, username))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return u, nil
}

// ListCouriers returns all courier users ordered by name.
func (r *UserRepo) ListCouriers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE role=$1 ORDER BY name, id`,
		string(domain.RoleCourier))
	if err != nil {
		return nil, fmt.Errorf("list couriers: %w", err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// Create inserts a new user. The unique index on username makes the
// check-and-insert atomic: a concurrent duplicate yields apperr.ErrConflict.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
        INSERT INTO users(name, username, password_hash, role, companies)
        VALUES($1, $2, $3, $4, $5)
        RETURNING id
    `, u.Name, u.Username, u.PasswordHash, string(u.Role), companiesToStrings(u.Companies)).Scan(&id)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.ErrConflict
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

// UpdateCompanies replaces a courier's whole company scope. Returns true if
// a courier row was affected.
func (r *UserRepo) UpdateCompanies(ctx context.Context, id int64, companies []domain.Company) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE users
        SET companies = $2, updated_at = now()
        WHERE id = $1 AND role = $3
    `, id, companiesToStrings(companies), string(domain.RoleCourier))
	if err != nil {
		return false, fmt.Errorf("update companies for user %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u    domain.User
		role string
		comp []string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash, &role, &comp); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	u.Companies = stringsToCompanies(comp)
	return &u, nil
}

func companiesToStrings(list []domain.Company) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, string(c))
	}
	return out
}

func stringsToCompanies(list []string) []domain.Company {
	if len(list) == 0 {
		return nil
	}
	out := make([]domain.Company, 0, len(list))
	for _, s := range list {
		out = append(out, domain.Company(s))
	}
	return out
}

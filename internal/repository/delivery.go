package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"entregas/internal/domain"
	"entregas/internal/ports/deliverytx"
)

// DeliveryRepo represents the delivery repository.
type DeliveryRepo struct {
	db *pgxpool.Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{db: db}
}

const deliveryColumns = `id, courier_id, company, photo_url, status, notes, created_at`

// Insert persists a new delivery and fills in its generated ID.
func (r *DeliveryRepo) Insert(ctx context.Context, d *domain.Delivery) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO deliveries (courier_id, company, photo_url, status, notes, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `, d.CourierID, string(d.Company), d.PhotoURL, string(d.Status), d.Notes, d.CreatedAt).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// List returns deliveries matching the filter, newest first with id as a
// deterministic tiebreak.
func (r *DeliveryRepo) List(ctx context.Context, f domain.DeliveryFilter) ([]domain.Delivery, error) {
	q := `SELECT ` + deliveryColumns + ` FROM deliveries`
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.CourierID != nil {
		add("courier_id = $%d", *f.CourierID)
	}
	if f.Company != nil {
		add("company = $%d", string(*f.Company))
	}
	if f.Status != nil {
		add("status = $%d", string(*f.Status))
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at < $%d", *f.To)
	}
	for i, c := range conds {
		if i == 0 {
			q += " WHERE " + c
		} else {
			q += " AND " + c
		}
	}
	q += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Delivery, 0)
	for rows.Next() {
		var d domain.Delivery
		if err := scanDelivery(rows, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// StatsByDay counts deliveries per calendar day within [start, end).
// A nil courierID counts across all couriers.
func (r *DeliveryRepo) StatsByDay(ctx context.Context, start, end time.Time, courierID *int64) (map[string]int, error) {
	q := `
        SELECT to_char(created_at, 'YYYY-MM-DD') AS day, COUNT(*)
        FROM deliveries
        WHERE created_at >= $1 AND created_at < $2
    `
	args := []any{start, end}
	if courierID != nil {
		q += " AND courier_id = $3"
		args = append(args, *courierID)
	}
	q += " GROUP BY day ORDER BY day"

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("stats by day: %w", err)
	}
	defer rows.Close()

	byDay := make(map[string]int)
	for rows.Next() {
		var (
			day string
			n   int
		)
		if err := rows.Scan(&day, &n); err != nil {
			return nil, err
		}
		byDay[day] = n
	}
	return byDay, rows.Err()
}

// WithTx opens a transaction and executes fn within it.
func (r *DeliveryRepo) WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	wrapped := &TxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// TxRepo represents the delivery repository bound to a transaction.
type TxRepo struct {
	tx pgx.Tx
}

// GetForUpdate loads a delivery and locks its row until the transaction ends,
// so two concurrent transitions cannot both observe "pending".
func (r *TxRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Delivery, error) {
	row := r.tx.QueryRow(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1 FOR UPDATE`, id)

	var d domain.Delivery
	if err := scanDelivery(row, &d); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery %d for update: %w", id, err)
	}
	return &d, nil
}

// UpdateStatus sets status and notes in one statement.
func (r *TxRepo) UpdateStatus(ctx context.Context, id int64, status domain.DeliveryStatus, notes *string) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE deliveries
        SET status = $2, notes = $3
        WHERE id = $1
    `, id, string(status), notes)
	if err != nil {
		return fmt.Errorf("update delivery status %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("delivery %d not found", id)
	}
	return nil
}

func scanDelivery(row rowScanner, d *domain.Delivery) error {
	var (
		company string
		status  string
	)
	if err := row.Scan(&d.ID, &d.CourierID, &company, &d.PhotoURL, &status, &d.Notes, &d.CreatedAt); err != nil {
		return err
	}
	d.Company = domain.Company(company)
	d.Status = domain.DeliveryStatus(status)
	return nil
}

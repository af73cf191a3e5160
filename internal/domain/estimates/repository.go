package estimates

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the pgx surface the repository needs; *pgxpool.Pool satisfies
// it, and so do mocks.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository handles database operations for estimates.
type Repository struct {
	db DB
}

// NewRepository creates an estimates repository.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the estimate header and all details in one
// transaction and fills in the generated IDs.
func (r *Repository) Create(ctx context.Context, e *Estimate) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	headerQuery := `
		INSERT INTO estimates (customer_id, estimate_date, total_amount, status, sales_person, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING estimate_id, created_at, updated_at
	`
	if e.Status == "" {
		e.Status = StatusDraft
	}
	err = tx.QueryRow(ctx, headerQuery,
		e.CustomerID,
		e.EstimateDate,
		e.TotalAmount,
		e.Status,
		e.SalesPerson,
		e.Notes,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert estimate: %w", err)
	}

	detailQuery := `
		INSERT INTO estimate_details (estimate_id, product_id, quantity, unit_price, amount, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING detail_id
	`
	for i := range e.Details {
		d := &e.Details[i]
		d.EstimateID = e.ID
		err = tx.QueryRow(ctx, detailQuery,
			d.EstimateID,
			d.ProductID,
			d.Quantity,
			d.UnitPrice,
			d.Amount,
			d.Notes,
		).Scan(&d.ID)
		if err != nil {
			return fmt.Errorf("insert estimate detail: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Get fetches one estimate with its details, joined with product
// names for rendering.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*Estimate, error) {
	headerQuery := `
		SELECT estimate_id, customer_id, estimate_date, total_amount, status, sales_person, notes, created_at, updated_at
		FROM estimates
		WHERE estimate_id = $1
	`
	var e Estimate
	err := r.db.QueryRow(ctx, headerQuery, id).Scan(
		&e.ID,
		&e.CustomerID,
		&e.EstimateDate,
		&e.TotalAmount,
		&e.Status,
		&e.SalesPerson,
		&e.Notes,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	detailQuery := `
		SELECT d.detail_id, d.estimate_id, d.product_id, p.product_name, p.unit, d.quantity, d.unit_price, d.amount, d.notes
		FROM estimate_details d
		JOIN products p ON p.product_id = d.product_id
		WHERE d.estimate_id = $1
		ORDER BY d.detail_id
	`
	rows, err := r.db.Query(ctx, detailQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d Detail
		if err := rows.Scan(
			&d.ID,
			&d.EstimateID,
			&d.ProductID,
			&d.ProductName,
			&d.Unit,
			&d.Quantity,
			&d.UnitPrice,
			&d.Amount,
			&d.Notes,
		); err != nil {
			return nil, err
		}
		e.Details = append(e.Details, d)
	}
	return &e, rows.Err()
}

// List returns estimate headers, newest first.
func (r *Repository) List(ctx context.Context) ([]Estimate, error) {
	query := `
		SELECT estimate_id, customer_id, estimate_date, total_amount, status, sales_person, notes, created_at, updated_at
		FROM estimates
		ORDER BY estimate_date DESC, created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var estimates []Estimate
	for rows.Next() {
		var e Estimate
		if err := rows.Scan(
			&e.ID,
			&e.CustomerID,
			&e.EstimateDate,
			&e.TotalAmount,
			&e.Status,
			&e.SalesPerson,
			&e.Notes,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		estimates = append(estimates, e)
	}
	return estimates, rows.Err()
}

// UpdateStatus moves an estimate through its lifecycle.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE estimates SET status = $2, updated_at = now() WHERE estimate_id = $1`
	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so
// one repository type serves both pooled and transactional access.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository handles database operations for the catalog masters.
type Repository struct {
	db   DBTX
	pool *pgxpool.Pool
}

// NewRepository creates a catalog repository over a connection pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool, pool: pool}
}

// WithTx runs fn against a repository bound to a single transaction.
// The transaction commits when fn returns nil and rolls back on error.
func (r *Repository) WithTx(ctx context.Context, fn func(Store) error) error {
	if r.pool == nil {
		return errors.New("catalog: repository is already transaction-scoped")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&Repository{db: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const customerColumns = `
	customer_id, company_name, company_name_kana, postal_code, address,
	latitude, longitude, distance_km, phone, email, contact_person,
	created_at, updated_at
`

func scanCustomer(row pgx.Row) (*Customer, error) {
	var c Customer
	err := row.Scan(
		&c.ID,
		&c.CompanyName,
		&c.CompanyNameKana,
		&c.PostalCode,
		&c.Address,
		&c.Latitude,
		&c.Longitude,
		&c.DistanceKm,
		&c.Phone,
		&c.Email,
		&c.ContactPerson,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindCustomerByName looks up a customer by exact company name.
func (r *Repository) FindCustomerByName(ctx context.Context, companyName string) (*Customer, error) {
	query := `SELECT` + customerColumns + `FROM customers WHERE company_name = $1`
	return scanCustomer(r.db.QueryRow(ctx, query, companyName))
}

// GetCustomerByID fetches a single customer.
func (r *Repository) GetCustomerByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	query := `SELECT` + customerColumns + `FROM customers WHERE customer_id = $1`
	return scanCustomer(r.db.QueryRow(ctx, query, id))
}

// InsertCustomer creates a customer row and fills in the generated ID.
func (r *Repository) InsertCustomer(ctx context.Context, c *Customer) error {
	query := `
		INSERT INTO customers (company_name, company_name_kana, postal_code, address, phone, email, contact_person)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING customer_id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		c.CompanyName,
		c.CompanyNameKana,
		c.PostalCode,
		c.Address,
		c.Phone,
		c.Email,
		c.ContactPerson,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// ListCustomers returns all customers ordered by company name.
func (r *Repository) ListCustomers(ctx context.Context) ([]Customer, error) {
	query := `SELECT` + customerColumns + `FROM customers ORDER BY company_name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}

// ListCustomersMissingGeo returns customers that have an address but
// no computed coordinates yet.
func (r *Repository) ListCustomersMissingGeo(ctx context.Context) ([]Customer, error) {
	query := `
		SELECT` + customerColumns + `
		FROM customers
		WHERE address IS NOT NULL AND address <> '' AND (latitude IS NULL OR distance_km IS NULL)
		ORDER BY company_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}

// UpdateCustomerGeo stores geocoded coordinates and the road-free
// distance from the office for a customer.
func (r *Repository) UpdateCustomerGeo(ctx context.Context, id uuid.UUID, lat, lon, distanceKm float64) error {
	query := `
		UPDATE customers
		SET latitude = $2, longitude = $3, distance_km = $4, updated_at = now()
		WHERE customer_id = $1
	`
	tag, err := r.db.Exec(ctx, query, id, lat, lon, distanceKm)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const productColumns = `
	product_id, product_name, product_category, description, base_price,
	unit, distance_coefficient, price_adjustment_type, notes,
	created_at, updated_at
`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.ProductName,
		&p.ProductCategory,
		&p.Description,
		&p.BasePrice,
		&p.Unit,
		&p.DistanceCoefficient,
		&p.PriceAdjustmentType,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindProductByName looks up a product by exact name.
func (r *Repository) FindProductByName(ctx context.Context, productName string) (*Product, error) {
	query := `SELECT` + productColumns + `FROM products WHERE product_name = $1`
	return scanProduct(r.db.QueryRow(ctx, query, productName))
}

// GetProductByID fetches a single product.
func (r *Repository) GetProductByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	query := `SELECT` + productColumns + `FROM products WHERE product_id = $1`
	return scanProduct(r.db.QueryRow(ctx, query, id))
}

// InsertProduct creates a product row and fills in the generated ID.
func (r *Repository) InsertProduct(ctx context.Context, p *Product) error {
	if p.ProductCategory == "" {
		p.ProductCategory = "その他"
	}
	if p.Unit == "" {
		p.Unit = "個"
	}
	query := `
		INSERT INTO products (product_name, product_category, description, base_price, unit, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING product_id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		p.ProductName,
		p.ProductCategory,
		p.Description,
		p.BasePrice,
		p.Unit,
		p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// UpdateProductPriceAndUnit raises a product's price and unit in one
// statement so the pair stays consistent.
func (r *Repository) UpdateProductPriceAndUnit(ctx context.Context, productID uuid.UUID, basePrice int64, unit string) error {
	query := `
		UPDATE products
		SET base_price = $2, unit = $3, updated_at = now()
		WHERE product_id = $1
	`
	tag, err := r.db.Exec(ctx, query, productID, basePrice, unit)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListProducts returns all products ordered by name.
func (r *Repository) ListProducts(ctx context.Context) ([]Product, error) {
	query := `SELECT` + productColumns + `FROM products ORDER BY product_name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// SetProductDistanceCoefficient configures how a product's price
// scales with customer distance.
func (r *Repository) SetProductDistanceCoefficient(ctx context.Context, id uuid.UUID, adjustmentType string, coefficient float64) error {
	query := `
		UPDATE products
		SET price_adjustment_type = $2, distance_coefficient = $3, updated_at = now()
		WHERE product_id = $1
	`
	tag, err := r.db.Exec(ctx, query, id, adjustmentType, coefficient)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetCategoryDistanceCoefficient applies one distance rule to every
// product in a category.
func (r *Repository) SetCategoryDistanceCoefficient(ctx context.Context, category, adjustmentType string, coefficient float64) (int64, error) {
	query := `
		UPDATE products
		SET price_adjustment_type = $2, distance_coefficient = $3, updated_at = now()
		WHERE product_category = $1
	`
	tag, err := r.db.Exec(ctx, query, category, adjustmentType, coefficient)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

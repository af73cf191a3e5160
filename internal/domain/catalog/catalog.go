// Package catalog owns the customer and product master data and the
// merge rules that keep quotation imports from corrupting it.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("catalog: not found")

// Customer is one row of the customer master. CompanyName is the
// identity key; merges never modify an existing customer.
type Customer struct {
	ID              uuid.UUID
	CompanyName     string
	CompanyNameKana *string
	PostalCode      *string
	Address         *string
	Latitude        *float64
	Longitude       *float64
	DistanceKm      *float64
	Phone           string
	Email           string
	ContactPerson   *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Product is one row of the product master. ProductName is the
// identity key; BasePrice is whole yen.
type Product struct {
	ID                  uuid.UUID
	ProductName         string
	ProductCategory     string
	Description         *string
	BasePrice           int64
	Unit                string
	DistanceCoefficient float64
	PriceAdjustmentType string
	Notes               *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Store is the catalog persistence surface the merger needs. It is
// satisfied by *Repository and by transaction-scoped repositories.
type Store interface {
	FindCustomerByName(ctx context.Context, companyName string) (*Customer, error)
	InsertCustomer(ctx context.Context, c *Customer) error
	FindProductByName(ctx context.Context, productName string) (*Product, error)
	InsertProduct(ctx context.Context, p *Product) error
	UpdateProductPriceAndUnit(ctx context.Context, productID uuid.UUID, basePrice int64, unit string) error
}

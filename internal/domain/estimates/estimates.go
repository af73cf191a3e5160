// Package estimates builds, stores and renders customer estimates
// priced from the catalog.
package estimates

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by lookups when no estimate matches.
var ErrNotFound = errors.New("estimates: not found")

// Estimate statuses.
const (
	StatusDraft    = "draft"
	StatusSent     = "sent"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Estimate is one estimate header. TotalAmount is whole yen.
type Estimate struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	EstimateDate time.Time
	TotalAmount  int64
	Status       string
	SalesPerson  *string
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Details []Detail
}

// Detail is one estimate line. Amount is UnitPrice x Quantity.
type Detail struct {
	ID          uuid.UUID
	EstimateID  uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int32
	Unit        string
	UnitPrice   int64
	Amount      int64
	Notes       *string
}

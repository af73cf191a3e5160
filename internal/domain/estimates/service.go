package estimates

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/quote-desk/internal/domain/catalog"
	"github.com/FACorreiaa/quote-desk/internal/domain/pricing"
)

// CustomerSource is the catalog surface the service reads customers
// from.
type CustomerSource interface {
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*catalog.Customer, error)
}

// ItemRequest is one requested line before pricing.
type ItemRequest struct {
	ProductName string `json:"product_name"`
	Quantity    int32  `json:"quantity"`
}

// Service assembles estimates: it prices each requested item against
// the catalog, applying the customer's office distance, and persists
// the result.
type Service struct {
	repo      *Repository
	customers CustomerSource
	predictor *pricing.Predictor
	logger    *slog.Logger
}

// NewService creates an estimates service.
func NewService(repo *Repository, customers CustomerSource, predictor *pricing.Predictor, logger *slog.Logger) *Service {
	return &Service{repo: repo, customers: customers, predictor: predictor, logger: logger}
}

// Build prices the requested items for a customer and stores the
// estimate as a draft. Customers without a computed distance are
// priced as distance zero.
func (s *Service) Build(ctx context.Context, customerID uuid.UUID, items []ItemRequest, salesPerson, notes string) (*Estimate, error) {
	customer, err := s.customers.GetCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load customer: %w", err)
	}

	distanceKm := 0.0
	if customer.DistanceKm != nil {
		distanceKm = *customer.DistanceKm
	}

	e := &Estimate{
		CustomerID:   customerID,
		EstimateDate: time.Now(),
		Status:       StatusDraft,
	}
	if salesPerson != "" {
		e.SalesPerson = &salesPerson
	}
	if notes != "" {
		e.Notes = &notes
	}

	for _, item := range items {
		pred, err := s.predictor.Predict(ctx, item.ProductName, int64(item.Quantity), distanceKm)
		if err != nil {
			return nil, fmt.Errorf("price %q: %w", item.ProductName, err)
		}

		e.Details = append(e.Details, Detail{
			ProductID:   pred.ProductID,
			ProductName: pred.Matched,
			Quantity:    int32(pred.Quantity),
			Unit:        pred.Unit,
			UnitPrice:   pred.UnitPrice,
			Amount:      pred.Total,
		})
		e.TotalAmount += pred.Total

		if !pred.Exact {
			s.logger.Info("estimate line priced by nearest product",
				slog.String("requested", item.ProductName),
				slog.String("matched", pred.Matched),
			)
		}
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("estimate created",
		slog.String("estimate_id", e.ID.String()),
		slog.String("company", customer.CompanyName),
		slog.Int64("total", e.TotalAmount),
	)
	return e, nil
}

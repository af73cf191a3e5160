package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Outcome describes what a single merge did to the catalog.
type Outcome string

const (
	// OutcomeNone means the input was unusable and nothing was
	// attempted (blank name, non-positive price).
	OutcomeNone Outcome = ""
	// OutcomeCreated means a new master row was inserted.
	OutcomeCreated Outcome = "created"
	// OutcomeUpdated means an existing product's price and unit were
	// raised together.
	OutcomeUpdated Outcome = "updated"
	// OutcomeSkipped means a matching row exists and was left alone.
	OutcomeSkipped Outcome = "skipped"
)

// Merger applies quotation extractions to the catalog masters.
//
// The rules are deliberately conservative. Customers are matched by
// exact company name and never overwritten. Products converge upward:
// an incoming price updates the row only when it is strictly higher
// than the stored one, and price and unit always move together so a
// product never mixes the unit of one quotation with the price of
// another.
type Merger struct {
	store      Store
	classifier Classifier
	logger     *slog.Logger
}

// Classifier assigns a category to a product name. New products get
// their category at insert time; updates never touch it.
type Classifier interface {
	Classify(name string) string
}

// NewMerger creates a merger over the given store.
func NewMerger(store Store, classifier Classifier, logger *slog.Logger) *Merger {
	return &Merger{store: store, classifier: classifier, logger: logger}
}

// MergeCustomer inserts the customer when the company name is unknown.
// An existing customer always wins; the incoming address is ignored.
func (m *Merger) MergeCustomer(ctx context.Context, companyName, address string) (Outcome, error) {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return OutcomeNone, nil
	}

	existing, err := m.store.FindCustomerByName(ctx, companyName)
	if err != nil && err != ErrNotFound {
		return OutcomeNone, fmt.Errorf("find customer %q: %w", companyName, err)
	}
	if existing != nil {
		m.logger.Debug("customer already known", slog.String("company", companyName))
		return OutcomeSkipped, nil
	}

	c := &Customer{CompanyName: companyName}
	if addr := strings.TrimSpace(address); addr != "" {
		c.Address = &addr
	}
	if err := m.store.InsertCustomer(ctx, c); err != nil {
		return OutcomeNone, fmt.Errorf("insert customer %q: %w", companyName, err)
	}

	m.logger.Info("customer created", slog.String("company", companyName))
	return OutcomeCreated, nil
}

// MergeProduct inserts an unknown product or raises a known one.
// A non-positive price is a no-op rather than an error: quotations
// with free or placeholder lines must not fail the document.
func (m *Merger) MergeProduct(ctx context.Context, name, unit string, basePrice int64) (Outcome, error) {
	name = strings.TrimSpace(name)
	if name == "" || basePrice <= 0 {
		return OutcomeNone, nil
	}
	if unit = strings.TrimSpace(unit); unit == "" {
		unit = "個"
	}

	existing, err := m.store.FindProductByName(ctx, name)
	if err != nil && err != ErrNotFound {
		return OutcomeNone, fmt.Errorf("find product %q: %w", name, err)
	}

	if existing == nil {
		p := &Product{
			ProductName:     name,
			ProductCategory: m.classifier.Classify(name),
			BasePrice:       basePrice,
			Unit:            unit,
		}
		if err := m.store.InsertProduct(ctx, p); err != nil {
			return OutcomeNone, fmt.Errorf("insert product %q: %w", name, err)
		}
		m.logger.Info("product created",
			slog.String("product", name),
			slog.Int64("price", basePrice),
		)
		return OutcomeCreated, nil
	}

	if basePrice <= existing.BasePrice {
		return OutcomeSkipped, nil
	}

	if err := m.store.UpdateProductPriceAndUnit(ctx, existing.ID, basePrice, unit); err != nil {
		return OutcomeNone, fmt.Errorf("update product %q: %w", name, err)
	}
	m.logger.Info("product price raised",
		slog.String("product", name),
		slog.Int64("from", existing.BasePrice),
		slog.Int64("to", basePrice),
	)
	return OutcomeUpdated, nil
}

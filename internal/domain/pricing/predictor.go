package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/FACorreiaa/quote-desk/internal/domain/catalog"
)

// ErrNoCandidate means no catalog product was close enough to the
// requested name to price against.
var ErrNoCandidate = errors.New("pricing: no candidate product")

// maxNameDistance caps how far a fuzzy match may drift before a
// prediction is refused outright.
const maxNameDistance = 5

// ProductSource is the catalog surface the predictor reads.
type ProductSource interface {
	FindProductByName(ctx context.Context, name string) (*catalog.Product, error)
	ListProducts(ctx context.Context) ([]catalog.Product, error)
}

// Prediction is a priced quotation line.
type Prediction struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Matched     string    `json:"matched_product"`
	Exact       bool      `json:"exact_match"`
	UnitPrice   int64     `json:"unit_price"`
	Quantity    int64     `json:"quantity"`
	Total       int64     `json:"total"`
	Unit        string    `json:"unit"`
}

// Predictor prices requested items against the catalog, falling back
// to the closest product name when there is no exact row.
type Predictor struct {
	products ProductSource
}

// NewPredictor creates a predictor over the catalog.
func NewPredictor(products ProductSource) *Predictor {
	return &Predictor{products: products}
}

// Predict prices one item for a customer at the given distance. An
// exact name match wins; otherwise the catalog product with the
// smallest Levenshtein distance within maxNameDistance is used.
func (p *Predictor) Predict(ctx context.Context, name string, quantity int64, distanceKm float64) (*Prediction, error) {
	if quantity <= 0 {
		quantity = 1
	}

	product, exact, err := p.resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	unitPrice := AdjustForDistance(
		product.BasePrice,
		AdjustmentKind(product.PriceAdjustmentType),
		product.DistanceCoefficient,
		distanceKm,
	)

	return &Prediction{
		ProductID:   product.ID,
		ProductName: name,
		Matched:     product.ProductName,
		Exact:       exact,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		Total:       unitPrice * quantity,
		Unit:        product.Unit,
	}, nil
}

func (p *Predictor) resolve(ctx context.Context, name string) (*catalog.Product, bool, error) {
	product, err := p.products.FindProductByName(ctx, name)
	if err == nil {
		return product, true, nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return nil, false, err
	}

	products, err := p.products.ListProducts(ctx)
	if err != nil {
		return nil, false, err
	}

	best := -1
	bestDistance := maxNameDistance + 1
	for i, candidate := range products {
		d := fuzzy.LevenshteinDistance(name, candidate.ProductName)
		if d < bestDistance {
			best, bestDistance = i, d
		}
	}
	if best < 0 {
		return nil, false, fmt.Errorf("%w: %q", ErrNoCandidate, name)
	}
	return &products[best], false, nil
}

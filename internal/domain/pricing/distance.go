// Package pricing computes quoted prices from the catalog, including
// distance-based adjustments for on-site work.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/quote-desk/pkg/money"
)

// AdjustmentKind selects how a product's price reacts to the distance
// between the office and the customer site.
type AdjustmentKind string

const (
	// KindFixed leaves the base price untouched.
	KindFixed AdjustmentKind = "fixed"
	// KindProportional adds a travel surcharge that grows with
	// distance.
	KindProportional AdjustmentKind = "distance_proportional"
	// KindDiscount subtracts with distance, for products priced for
	// remote fulfilment. The result never goes below zero.
	KindDiscount AdjustmentKind = "distance_discount"
)

// AdjustForDistance applies a product's distance rule to its base
// price. The adjustment is basePrice x coefficient x distanceKm,
// truncated to whole yen. Unknown kinds behave like KindFixed so a
// bad row degrades to the unadjusted price instead of failing.
func AdjustForDistance(basePrice int64, kind AdjustmentKind, coefficient, distanceKm float64) int64 {
	if basePrice <= 0 {
		return basePrice
	}

	delta := money.TruncateToYen(
		decimal.NewFromInt(basePrice).
			Mul(decimal.NewFromFloat(coefficient)).
			Mul(decimal.NewFromFloat(distanceKm)),
	)

	switch kind {
	case KindProportional:
		return basePrice + delta
	case KindDiscount:
		adjusted := basePrice - delta
		if adjusted < 0 {
			return 0
		}
		return adjusted
	default:
		return basePrice
	}
}

// Package money provides yen-safe monetary arithmetic using integer
// amounts and the Fowler Money pattern. Quotation amounts are always
// whole yen (JPY is a zero-decimal currency), so the minor-unit value
// is the face value.
package money

import (
	"fmt"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// JPY is the only currency the quotation system deals in.
const JPY = "JPY"

// Yen represents a whole-yen monetary value.
type Yen struct {
	m *gomoney.Money
}

// NewYen creates a Yen value from a whole-yen amount.
func NewYen(amount int64) Yen {
	return Yen{m: gomoney.New(amount, JPY)}
}

// Amount returns the whole-yen amount.
func (y Yen) Amount() int64 {
	if y.m == nil {
		return 0
	}
	return y.m.Amount()
}

// Add returns y + other.
func (y Yen) Add(other Yen) (Yen, error) {
	sum, err := y.m.Add(other.m)
	if err != nil {
		return Yen{}, fmt.Errorf("failed to add yen amounts: %w", err)
	}
	return Yen{m: sum}, nil
}

// MulQuantity returns the line amount for a quantity of units.
func (y Yen) MulQuantity(qty int64) Yen {
	return Yen{m: y.m.Multiply(qty)}
}

// Display formats the amount with a currency glyph and thousand
// separators, e.g. ¥12,500.
func (y Yen) Display() string {
	if y.m == nil {
		return gomoney.New(0, JPY).Display()
	}
	return y.m.Display()
}

// TruncateToYen converts an arbitrary-precision decimal into whole yen,
// truncating any fractional part (quotation PDFs occasionally carry
// fractional unit prices that the catalog stores truncated).
func TruncateToYen(d decimal.Decimal) int64 {
	return d.Truncate(0).IntPart()
}

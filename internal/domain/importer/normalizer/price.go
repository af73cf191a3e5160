// Package normalizer converts raw quotation tokens into catalog
// values.
package normalizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/quote-desk/pkg/money"
)

// ErrInvalidPriceToken indicates a price cell that is not numeric after
// stripping currency decoration. Callers drop the enclosing row; it
// never aborts a document.
var ErrInvalidPriceToken = errors.New("invalid price token")

// priceDecoration strips both yen-sign variants, the 円 unit character
// and thousand separators wherever they appear in the token.
var priceDecoration = strings.NewReplacer("￥", "", "¥", "", "円", "", ",", "")

// NormalizePrice converts a raw price token (e.g. "￥12,500円") into a
// whole-yen amount, truncating any fractional part.
func NormalizePrice(token string) (int64, error) {
	cleaned := strings.TrimSpace(priceDecoration.Replace(token))
	if cleaned == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPriceToken, token)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPriceToken, token)
	}
	return money.TruncateToYen(d), nil
}

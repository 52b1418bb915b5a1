package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxFractionDigits is the finest precision accepted for an amount.
const MaxFractionDigits = 4

// MaxAmount is the exclusive upper bound on the magnitude of an amount.
var MaxAmount = decimal.New(1, 12)

var ErrAmountRange = errors.New("amount out of range")

// ParseAmount parses a decimal money string. It rejects values with more
// than MaxFractionDigits fractional digits or a magnitude of MaxAmount or
// more, so a short string cannot expand into an enormous stored number.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%q is not a number", s)
	}

	// Bound the exponent before any comparison that would rescale d.
	exp := d.Exponent()
	if exp > 12 {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is too large", ErrAmountRange, s)
	}
	if exp < -64 || !d.Equal(d.Truncate(MaxFractionDigits)) {
		return decimal.Decimal{}, fmt.Errorf("%w: %q has more than %d decimal places", ErrAmountRange, s, MaxFractionDigits)
	}
	if d.Abs().GreaterThanOrEqual(MaxAmount) {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is too large", ErrAmountRange, s)
	}
	return d, nil
}

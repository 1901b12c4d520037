package inventory

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var maxCents = decimal.NewFromInt(math.MaxInt64)

// ParsePrice reads a console price such as "3.29" and returns whole cents.
// The value is quantized to two places with banker's rounding first, so
// "3.295" becomes 330.
func ParsePrice(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if !priceRegex.MatchString(s) {
		return 0, &ValidationError{Field: FieldPrice, Input: raw, Err: ErrPriceFormat}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, &ValidationError{Field: FieldPrice, Input: raw, Err: ErrPriceFormat}
	}
	cents := d.RoundBank(2).Shift(2)
	if cents.GreaterThan(maxCents) {
		return 0, &ValidationError{Field: FieldPrice, Input: raw, Err: ErrPriceFormat}
	}
	return cents.IntPart(), nil
}

// ParseCurrency reads a seed-file price such as "$3.29" and returns whole
// cents. Unlike ParsePrice it never rounds: more than two fractional digits
// is an error. Signs and exponents are rejected.
func ParseCurrency(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	if !priceRegex.MatchString(s) {
		return 0, fmt.Errorf("invalid price %q: %w", raw, ErrPriceFormat)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", raw, err)
	}
	cents := d.Shift(2)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("invalid price %q: more than two decimal places", raw)
	}
	if cents.GreaterThan(maxCents) {
		return 0, fmt.Errorf("invalid price %q: out of range", raw)
	}
	return cents.IntPart(), nil
}

// FormatCents renders cents as dollars, e.g. 329 -> "$3.29", 5 -> "$0.05".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

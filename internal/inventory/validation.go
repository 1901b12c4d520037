// Package inventory holds the input rules for products entered at the console:
// name casing, price and quantity parsing, and cent formatting.
package inventory

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Field identifies which input failed validation.
type Field int

const (
	FieldName Field = iota
	FieldPrice
	FieldQuantity
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldPrice:
		return "price"
	case FieldQuantity:
		return "quantity"
	default:
		return "unknown"
	}
}

var (
	ErrNameFormat     = errors.New("name must contain only letters and spaces")
	ErrPriceFormat    = errors.New("price must be a number with at most one decimal point")
	ErrQuantityFormat = errors.New("quantity must be a whole number")
)

// ValidationError reports a malformed console entry.
type ValidationError struct {
	Field Field
	Input string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Input, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var (
	priceRegex    = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)
	quantityRegex = regexp.MustCompile(`^\d+$`)
)

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
// A Caser is stateful, so one is built per call.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// NormalizeName trims and title-cases a product name. Ignoring spaces, the
// name must be non-empty and made of letters only.
func NormalizeName(raw string) (string, error) {
	name := TitleCase(strings.TrimSpace(raw))
	letters := strings.ReplaceAll(name, " ", "")
	if letters == "" {
		return "", &ValidationError{Field: FieldName, Input: raw, Err: ErrNameFormat}
	}
	for _, r := range letters {
		if !unicode.IsLetter(r) {
			return "", &ValidationError{Field: FieldName, Input: raw, Err: ErrNameFormat}
		}
	}
	return name, nil
}

// ParseQuantity accepts a non-negative integer string.
func ParseQuantity(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if !quantityRegex.MatchString(s) {
		return 0, &ValidationError{Field: FieldQuantity, Input: raw, Err: ErrQuantityFormat}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Field: FieldQuantity, Input: raw, Err: ErrQuantityFormat}
	}
	return n, nil
}

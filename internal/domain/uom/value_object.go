package uom

import (
	"github.com/shopspring/decimal"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
)

// Precision and scale of a conversion factor, matching numeric(10,3).
const (
	FactorPrecision = 10
	FactorScale     = 3
)

// maxFactor is the largest value numeric(10,3) holds: 9999999.999.
var maxFactor = decimal.New(1, FactorPrecision-FactorScale).Sub(decimal.New(1, -FactorScale))

// ConversionFactor is the positive multiplier converting a quantity in this
// unit to the canonical base unit.
type ConversionFactor struct {
	value decimal.Decimal
}

// NewConversionFactor rounds d to FactorScale places and checks it is positive
// and fits the column precision.
func NewConversionFactor(d decimal.Decimal) (ConversionFactor, error) {
	rounded := d.Round(FactorScale)
	if !rounded.IsPositive() {
		return ConversionFactor{}, shared.InvalidData(ErrFactorNotPositive)
	}
	if rounded.GreaterThan(maxFactor) {
		return ConversionFactor{}, shared.InvalidData(ErrFactorTooLarge)
	}
	return ConversionFactor{value: rounded}, nil
}

// ParseConversionFactor parses a decimal string, e.g. from a spreadsheet cell.
func ParseConversionFactor(s string) (ConversionFactor, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ConversionFactor{}, shared.InvalidData(ErrFactorNotNumeric)
	}
	return NewConversionFactor(d)
}

// MustConversionFactor is NewConversionFactor for trusted literals; it panics on invalid input.
func MustConversionFactor(s string) ConversionFactor {
	f, err := ParseConversionFactor(s)
	if err != nil {
		panic(err)
	}
	return f
}

// Decimal returns the underlying decimal.
func (f ConversionFactor) Decimal() decimal.Decimal {
	return f.value
}

// String renders the factor with exactly FactorScale decimal places.
func (f ConversionFactor) String() string {
	return f.value.StringFixed(FactorScale)
}

// Equals compares two factors numerically.
func (f ConversionFactor) Equals(other ConversionFactor) bool {
	return f.value.Equal(other.value)
}

// IsZero reports whether the factor is unset.
func (f ConversionFactor) IsZero() bool {
	return f.value.IsZero()
}

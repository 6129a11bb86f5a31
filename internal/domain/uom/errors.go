package uom

import (
	"errors"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
)

// Domain errors for UOM operations.
var (
	// ErrFactorNotPositive is returned when the conversion factor is zero or negative.
	ErrFactorNotPositive = errors.New("conversionFactorToBase: must be greater than 0")

	// ErrFactorTooLarge is returned when the conversion factor exceeds numeric(10,3).
	ErrFactorTooLarge = errors.New("conversionFactorToBase: numeric value out of bounds (<7 digits>.<3 digits> expected)")

	// ErrFactorNotNumeric is returned when a conversion factor cannot be parsed.
	ErrFactorNotNumeric = errors.New("conversionFactorToBase: must be a decimal number")

	// ErrStatusRequired is returned when no status id is supplied.
	ErrStatusRequired = errors.New("uomStatusId: must not be null")

	// ErrBlankSearch is returned when a name search has no usable term.
	ErrBlankSearch = errors.New("name: search term must not be blank")
)

// NotFound returns the error for a missing UOM id.
func NotFound(id int64) *shared.Error {
	return shared.NotFound(EntityName, "id", id)
}

// NameTaken returns the error for a UOM name that already exists, ignoring case.
func NameTaken(name string) *shared.Error {
	return shared.AlreadyExists(EntityName, "name", name)
}

// NotFoundByName returns the error for a missing UOM name.
func NotFoundByName(name string) *shared.Error {
	return shared.NotFound(EntityName, "name", name)
}

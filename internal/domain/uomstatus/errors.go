package uomstatus

import (
	"errors"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
)

// ErrBlankSearch is returned when a name search has no usable term.
var ErrBlankSearch = errors.New("name: search term must not be blank")

// NotFound returns the error for a missing Status id.
func NotFound(id int64) *shared.Error {
	return shared.NotFound(EntityName, "id", id)
}

// NameTaken returns the error for a Status name that already exists.
func NameTaken(name string) *shared.Error {
	return shared.AlreadyExists(EntityName, "name", name)
}

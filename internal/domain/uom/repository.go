package uom

import (
	"context"
	"fmt"
	"slices"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
)

// Repository defines the interface for UOM persistence.
// This interface is defined in domain layer, implemented in infrastructure layer.
type Repository interface {
	// Create persists a new UOM and returns it with its assigned id.
	Create(ctx context.Context, uom *UOM) (*UOM, error)

	// GetByID retrieves a UOM by its id.
	GetByID(ctx context.Context, id int64) (*UOM, error)

	// GetByName retrieves a UOM by name, ignoring case.
	GetByName(ctx context.Context, name string) (*UOM, error)

	// Update persists name, description, conversion factor and status reference.
	Update(ctx context.Context, uom *UOM) error

	// Delete removes a UOM by id.
	Delete(ctx context.Context, id int64) error

	// List retrieves UOMs matching the filter, plus the total match count.
	List(ctx context.Context, filter ListFilter) ([]*UOM, int64, error)

	// ListAll retrieves every UOM matching the export filter, ordered by name.
	ListAll(ctx context.Context, filter ExportFilter) ([]*UOM, error)

	// ExistsByID checks if a UOM with the given id exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// ExistsByNameIgnoreCase checks for a name match, ignoring case.
	ExistsByNameIgnoreCase(ctx context.Context, name string) (bool, error)
}

// SortProperties are the properties a UOM list can be sorted by.
var SortProperties = []string{"id", "name", "description", "conversionFactorToBase", "uomStatusId"}

// ListFilter contains filtering options for listing UOMs.
type ListFilter struct {
	// Name matches a case-insensitive substring when set.
	Name *string

	// StatusID matches the referenced Status when set.
	StatusID *int64

	Page shared.PageRequest
}

// ExportFilter contains filtering options for exporting UOMs.
type ExportFilter struct {
	Name     *string
	StatusID *int64
}

// NewListFilter creates a ListFilter sorted by name ascending.
func NewListFilter(page, size int) ListFilter {
	return ListFilter{
		Page: shared.NewPageRequest(page, size, shared.Sort{Property: "name", Direction: shared.SortAsc}),
	}
}

// Validate normalizes the page and rejects unknown sort properties.
func (f *ListFilter) Validate() error {
	if f.Page.Sort.Property == "" {
		f.Page.Sort.Property = "name"
	}
	f.Page = shared.NewPageRequest(f.Page.Page, f.Page.Size, f.Page.Sort)
	if !slices.Contains(SortProperties, f.Page.Sort.Property) {
		return shared.InvalidData(fmt.Errorf("sort: unsupported property %q", f.Page.Sort.Property))
	}
	return nil
}

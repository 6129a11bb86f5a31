package uomstatus

import (
	"context"
	"fmt"
	"slices"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
)

// Repository defines the interface for Status persistence.
// Missing records are reported as NotFound; a unique name violation as NameTaken.
type Repository interface {
	// Create persists a new Status and returns it with its assigned id.
	Create(ctx context.Context, status *Status) (*Status, error)

	// GetByID retrieves a Status by its id.
	GetByID(ctx context.Context, id int64) (*Status, error)

	// Update persists name, description and usability of an existing Status.
	Update(ctx context.Context, status *Status) error

	// Delete removes a Status by id.
	Delete(ctx context.Context, id int64) error

	// List retrieves Statuses matching the filter, plus the total match count.
	List(ctx context.Context, filter ListFilter) ([]*Status, int64, error)

	// ListAll retrieves every Status ordered by name (for export).
	ListAll(ctx context.Context) ([]*Status, error)

	// ExistsByID checks if a Status with the given id exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// ExistsByName checks for an exact, case-sensitive name match.
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// SortProperties are the properties a Status list can be sorted by.
var SortProperties = []string{"id", "name", "description", "isUsable"}

// ListFilter contains filtering options for listing Statuses.
type ListFilter struct {
	// Name matches a case-insensitive substring when set.
	Name *string

	// IsUsable matches the flag exactly when set.
	IsUsable *bool

	Page shared.PageRequest
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

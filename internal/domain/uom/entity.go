// Package uom provides domain logic for Unit of Measure management.
package uom

import (
	"github.com/shopspring/decimal"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
)

// EntityName identifies the UOM entity in error messages and audit records.
const EntityName = "Uom"

// UOM is the aggregate root for Unit of Measure domain.
type UOM struct {
	id               int64
	name             string
	description      string
	conversionFactor ConversionFactor
	statusID         int64
}

// NewUOM creates a UOM that has not been persisted yet. The caller is
// responsible for checking that statusID refers to an existing Status.
func NewUOM(name, description string, factor ConversionFactor, statusID int64) (*UOM, error) {
	if err := shared.ValidateName(name); err != nil {
		return nil, err
	}
	if err := shared.ValidateDescription(description); err != nil {
		return nil, err
	}
	if factor.IsZero() {
		return nil, shared.InvalidData(ErrFactorNotPositive)
	}
	if statusID == 0 {
		return nil, shared.InvalidData(ErrStatusRequired)
	}

	return &UOM{
		name:             name,
		description:      description,
		conversionFactor: factor,
		statusID:         statusID,
	}, nil
}

// ReconstructUOM rebuilds a UOM from persistence data.
func ReconstructUOM(id int64, name, description string, factor decimal.Decimal, statusID int64) *UOM {
	return &UOM{
		id:               id,
		name:             name,
		description:      description,
		conversionFactor: ConversionFactor{value: factor},
		statusID:         statusID,
	}
}

// =============================================================================
// Getters
// =============================================================================

// ID returns the server-assigned identifier, zero before persistence.
func (u *UOM) ID() int64 { return u.id }

// Name returns the unique name.
func (u *UOM) Name() string { return u.name }

// Description returns the optional description.
func (u *UOM) Description() string { return u.description }

// ConversionFactor returns the multiplier to the base unit.
func (u *UOM) ConversionFactor() ConversionFactor { return u.conversionFactor }

// StatusID returns the id of the referenced Status.
func (u *UOM) StatusID() int64 { return u.statusID }

// =============================================================================
// Domain Behavior Methods
// =============================================================================

// Update applies the supplied fields. The Status reference is kept; use
// ChangeStatus to point the UOM at another Status.
func (u *UOM) Update(name, description *string, factor *ConversionFactor) error {
	if name != nil {
		if err := shared.ValidateName(*name); err != nil {
			return err
		}
	}
	if description != nil {
		if err := shared.ValidateDescription(*description); err != nil {
			return err
		}
	}
	if factor != nil && factor.IsZero() {
		return shared.InvalidData(ErrFactorNotPositive)
	}

	if name != nil {
		u.name = *name
	}
	if description != nil {
		u.description = *description
	}
	if factor != nil {
		u.conversionFactor = *factor
	}
	return nil
}

// ChangeStatus points the UOM at another Status.
func (u *UOM) ChangeStatus(statusID int64) error {
	if statusID == 0 {
		return shared.InvalidData(ErrStatusRequired)
	}
	u.statusID = statusID
	return nil
}

// Snapshot is a plain copy of a UOM, used for audit records, events and cache entries.
type Snapshot struct {
	ID                     int64           `json:"id"`
	Name                   string          `json:"name"`
	Description            string          `json:"description,omitempty"`
	ConversionFactorToBase decimal.Decimal `json:"conversionFactorToBase"`
	UomStatusID            int64           `json:"uomStatusId"`
}

// Snapshot returns a plain copy of the current state.
func (u *UOM) Snapshot() Snapshot {
	return Snapshot{
		ID:                     u.id,
		Name:                   u.name,
		Description:            u.description,
		ConversionFactorToBase: u.conversionFactor.value,
		UomStatusID:            u.statusID,
	}
}

// FromSnapshot rebuilds a UOM from a snapshot.
func FromSnapshot(snap Snapshot) *UOM {
	return ReconstructUOM(snap.ID, snap.Name, snap.Description, snap.ConversionFactorToBase, snap.UomStatusID)
}

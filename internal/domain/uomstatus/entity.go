// Package uomstatus provides domain logic for UOM status classifications.
package uomstatus

import "github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"

// EntityName identifies the Status entity in error messages and audit records.
const EntityName = "UomStatus"

// Status is the aggregate root for a usability classification.
type Status struct {
	id          int64
	name        string
	description string
	isUsable    bool
}

// NewStatus creates a Status that has not been persisted yet.
func NewStatus(name, description string, isUsable bool) (*Status, error) {
	if err := shared.ValidateName(name); err != nil {
		return nil, err
	}
	if err := shared.ValidateDescription(description); err != nil {
		return nil, err
	}

	return &Status{
		name:        name,
		description: description,
		isUsable:    isUsable,
	}, nil
}

// ReconstructStatus rebuilds a Status from persistence data.
func ReconstructStatus(id int64, name, description string, isUsable bool) *Status {
	return &Status{
		id:          id,
		name:        name,
		description: description,
		isUsable:    isUsable,
	}
}

// ID returns the server-assigned identifier, zero before persistence.
func (s *Status) ID() int64 { return s.id }

// Name returns the unique name.
func (s *Status) Name() string { return s.name }

// Description returns the optional description.
func (s *Status) Description() string { return s.description }

// IsUsable returns the usability flag.
func (s *Status) IsUsable() bool { return s.isUsable }

// Update applies the supplied name and description. The usability flag is
// never touched here; see ChangeUsability.
func (s *Status) Update(name, description *string) error {
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

	if name != nil {
		s.name = *name
	}
	if description != nil {
		s.description = *description
	}
	return nil
}

// ChangeUsability sets the usability flag.
func (s *Status) ChangeUsability(isUsable bool) {
	s.isUsable = isUsable
}

// Snapshot is a plain copy of a Status, used for audit records, events and cache entries.
type Snapshot struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsUsable    bool   `json:"isUsable"`
}

// Snapshot returns a plain copy of the current state.
func (s *Status) Snapshot() Snapshot {
	return Snapshot{
		ID:          s.id,
		Name:        s.name,
		Description: s.description,
		IsUsable:    s.isUsable,
	}
}

// FromSnapshot rebuilds a Status from a snapshot.
func FromSnapshot(snap Snapshot) *Status {
	return ReconstructStatus(snap.ID, snap.Name, snap.Description, snap.IsUsable)
}

package uom

import (
	"context"
	"strings"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uom"
)

// CheckNameHandler answers whether a UOM name is taken, ignoring case.
type CheckNameHandler struct {
	repo uom.Repository
}

// NewCheckNameHandler creates a new CheckNameHandler.
func NewCheckNameHandler(repo uom.Repository) *CheckNameHandler {
	return &CheckNameHandler{repo: repo}
}

// Handle reports whether name is already used by a UOM.
func (h *CheckNameHandler) Handle(ctx context.Context, name string) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, shared.InvalidData(shared.ErrNameBlank)
	}

	taken, err := h.repo.ExistsByNameIgnoreCase(ctx, name)
	if err != nil {
		return false, normalize(err, "check-name")
	}
	return taken, nil
}

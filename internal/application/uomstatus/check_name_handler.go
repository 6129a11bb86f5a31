package uomstatus

import (
	"context"
	"strings"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uomstatus"
)

// CheckNameHandler answers whether a Status name is taken. The match is exact
// and case-sensitive.
type CheckNameHandler struct {
	repo uomstatus.Repository
}

// NewCheckNameHandler creates a new CheckNameHandler.
func NewCheckNameHandler(repo uomstatus.Repository) *CheckNameHandler {
	return &CheckNameHandler{repo: repo}
}

// Handle reports whether name is already used by a Status.
func (h *CheckNameHandler) Handle(ctx context.Context, name string) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, shared.InvalidData(shared.ErrNameBlank)
	}

	taken, err := h.repo.ExistsByName(ctx, name)
	if err != nil {
		return false, normalize(err, "check-name")
	}
	return taken, nil
}

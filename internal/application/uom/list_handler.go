package uom

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uom"
)

// ListQuery represents the list UOMs query.
type ListQuery struct {
	Name     *string
	StatusID *int64
	Page     shared.PageRequest
}

// ListHandler handles the list, search and filter-by-status queries.
type ListHandler struct {
	repo uom.Repository
}

// NewListHandler creates a new ListHandler.
func NewListHandler(repo uom.Repository) *ListHandler {
	return &ListHandler{repo: repo}
}

// Handle executes the list UOMs query.
func (h *ListHandler) Handle(ctx context.Context, query ListQuery) (shared.Page[*uom.UOM], error) {
	if query.Name != nil && strings.TrimSpace(*query.Name) == "" {
		return shared.Page[*uom.UOM]{}, shared.InvalidData(uom.ErrBlankSearch)
	}

	filter := uom.ListFilter{
		Name:     query.Name,
		StatusID: query.StatusID,
		Page:     query.Page,
	}
	if err := filter.Validate(); err != nil {
		return shared.Page[*uom.UOM]{}, err
	}

	items, total, err := h.repo.List(ctx, filter)
	if err != nil {
		return shared.Page[*uom.UOM]{}, normalize(err, "list")
	}

	log.Debug().Int("returned", len(items)).Int64("total", total).Msg("Uom page fetched")
	return shared.NewPage(items, filter.Page, total), nil
}

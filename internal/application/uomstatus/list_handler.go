package uomstatus

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uomstatus"
)

// ListQuery represents the list Statuses query. Name and IsUsable are optional
// filters; a set Name must not be blank.
type ListQuery struct {
	Name     *string
	IsUsable *bool
	Page     shared.PageRequest
}

// ListHandler handles the list, search and filter queries.
type ListHandler struct {
	repo uomstatus.Repository
}

// NewListHandler creates a new ListHandler.
func NewListHandler(repo uomstatus.Repository) *ListHandler {
	return &ListHandler{repo: repo}
}

// Handle executes the list Statuses query.
func (h *ListHandler) Handle(ctx context.Context, query ListQuery) (shared.Page[*uomstatus.Status], error) {
	if query.Name != nil && strings.TrimSpace(*query.Name) == "" {
		return shared.Page[*uomstatus.Status]{}, shared.InvalidData(uomstatus.ErrBlankSearch)
	}

	filter := uomstatus.ListFilter{
		Name:     query.Name,
		IsUsable: query.IsUsable,
		Page:     query.Page,
	}
	if err := filter.Validate(); err != nil {
		return shared.Page[*uomstatus.Status]{}, err
	}

	items, total, err := h.repo.List(ctx, filter)
	if err != nil {
		return shared.Page[*uomstatus.Status]{}, normalize(err, "list")
	}

	log.Debug().Int("returned", len(items)).Int64("total", total).Msg("UomStatus page fetched")
	return shared.NewPage(items, filter.Page, total), nil
}

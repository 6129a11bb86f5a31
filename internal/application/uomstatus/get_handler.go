package uomstatus

import (
	"context"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uomstatus"
)

// GetQuery represents the get Status query.
type GetQuery struct {
	ID int64
}

// GetHandler handles the GetStatus query.
type GetHandler struct {
	repo  uomstatus.Repository
	cache Cache
}

// NewGetHandler creates a new GetHandler. cache may be nil.
func NewGetHandler(repo uomstatus.Repository, cache Cache) *GetHandler {
	return &GetHandler{repo: repo, cache: cacheOrNoop(cache)}
}

// Handle executes the get Status query.
func (h *GetHandler) Handle(ctx context.Context, query GetQuery) (*uomstatus.Status, error) {
	if cached, ok := h.cache.Get(ctx, query.ID); ok {
		return cached, nil
	}

	entity, err := h.repo.GetByID(ctx, query.ID)
	if err != nil {
		return nil, normalize(err, "get")
	}

	h.cache.Set(ctx, entity)
	return entity, nil
}

package uom

import (
	"context"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uom"
)

// GetQuery represents the get UOM query.
type GetQuery struct {
	ID int64
}

// GetHandler handles the GetUOM query.
type GetHandler struct {
	repo  uom.Repository
	cache Cache
}

// NewGetHandler creates a new GetHandler.
func NewGetHandler(repo uom.Repository, cache Cache) *GetHandler {
	return &GetHandler{repo: repo, cache: cacheOrNoop(cache)}
}

// Handle executes the get UOM query.
func (h *GetHandler) Handle(ctx context.Context, query GetQuery) (*uom.UOM, error) {
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

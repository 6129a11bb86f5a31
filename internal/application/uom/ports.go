// Package uom provides application layer handlers for UOM operations.
package uom

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uom"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uomstatus"
)

// Cache is a read-through cache for single UOMs.
type Cache interface {
	Get(ctx context.Context, id int64) (*uom.UOM, bool)
	Set(ctx context.Context, entity *uom.UOM)
}

// StatusChecker is the part of the Status repository the UOM handlers need.
type StatusChecker interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

var _ StatusChecker = (uomstatus.Repository)(nil)

type noCache struct{}

func (noCache) Get(context.Context, int64) (*uom.UOM, bool) { return nil, false }
func (noCache) Set(context.Context, *uom.UOM) {}

type noListener struct{}

func (noListener) OnChange(context.Context, shared.Change) {}

func cacheOrNoop(c Cache) Cache {
	if c == nil {
		return noCache{}
	}
	return c
}

func listenerOrNoop(l shared.ChangeListener) shared.ChangeListener {
	if l == nil {
		return noListener{}
	}
	return l
}

// requireStatus fails with a Status not-found error when id is unknown.
func requireStatus(ctx context.Context, statuses StatusChecker, id int64) error {
	ok, err := statuses.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		log.Warn().Int64("uom_status_id", id).Msg("Referenced UomStatus not found")
		return uomstatus.NotFound(id)
	}
	return nil
}

func normalize(err error, operation string) error {
	err = shared.Normalize(err)
	if shared.KindOf(err) == shared.KindUnexpected {
		log.Error().Err(err).Str("entity", uom.EntityName).Str("operation", operation).Msg("Persistence failure")
	}
	return err
}

// Package uomstatus provides application layer handlers for UOM status operations.
package uomstatus

import (
	"context"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uomstatus"
)

// Cache is a read-through cache for single Statuses. Invalidation happens
// through a shared.ChangeListener, so handlers only read and fill it.
type Cache interface {
	Get(ctx context.Context, id int64) (*uomstatus.Status, bool)
	Set(ctx context.Context, status *uomstatus.Status)
}

type noCache struct{}

func (noCache) Get(context.Context, int64) (*uomstatus.Status, bool) { return nil, false }
func (noCache) Set(context.Context, *uomstatus.Status) {}

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

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uom"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uomstatus"
	"github.com/mutugading/goapps-backend/services/uom/pkg/circuitbreaker"
	"github.com/mutugading/goapps-backend/services/uom/pkg/metrics"
)

// Cache keys
const (
	statusByIDKey = "uom_status:id:%d"
	uomByIDKey    = "uom:id:%d"
)

// EntityCache caches single entities by id as JSON snapshots. Redis failures
// are logged and count against the breaker; callers see a miss.
type EntityCache[E any, S any] struct {
	client  *Client
	breaker *circuitbreaker.CircuitBreaker
	entity  string
	keyFmt  string
	ttl     time.Duration

	idOf     func(E) int64
	snapshot func(E) S
	restore  func(S) E
}

// StatusCache caches Statuses.
type StatusCache = EntityCache[*uomstatus.Status, uomstatus.Snapshot]

// UOMCache caches UOMs.
type UOMCache = EntityCache[*uom.UOM, uom.Snapshot]

// NewStatusCache creates the Status cache.
func NewStatusCache(client *Client, breaker *circuitbreaker.CircuitBreaker, ttl time.Duration) *StatusCache {
	return &StatusCache{
		client:   client,
		breaker:  breaker,
		entity:   uomstatus.EntityName,
		keyFmt:   statusByIDKey,
		ttl:      ttl,
		idOf:     (*uomstatus.Status).ID,
		snapshot: (*uomstatus.Status).Snapshot,
		restore:  uomstatus.FromSnapshot,
	}
}

// NewUOMCache creates the UOM cache.
func NewUOMCache(client *Client, breaker *circuitbreaker.CircuitBreaker, ttl time.Duration) *UOMCache {
	return &UOMCache{
		client:   client,
		breaker:  breaker,
		entity:   uom.EntityName,
		keyFmt:   uomByIDKey,
		ttl:      ttl,
		idOf:     (*uom.UOM).ID,
		snapshot: (*uom.UOM).Snapshot,
		restore:  uom.FromSnapshot,
	}
}

// NewBreaker returns a breaker that does not count cache misses as failures.
func NewBreaker() *circuitbreaker.CircuitBreaker {
	settings := circuitbreaker.DefaultSettings("redis")
	settings.IsFailure = func(err error) bool {
		return !errors.Is(err, redis.Nil) && !errors.Is(err, context.Canceled)
	}
	settings.OnStateChange = func(name string, from, to circuitbreaker.State) {
		log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
		metrics.RecordBreakerState(name, from, to)
	}
	return circuitbreaker.New(settings)
}

func (c *EntityCache[E, S]) key(id int64) string {
	return fmt.Sprintf(c.keyFmt, id)
}

// Get returns the cached entity for id.
func (c *EntityCache[E, S]) Get(ctx context.Context, id int64) (E, bool) {
	var zero E
	key := c.key(id)

	data, err := circuitbreaker.Run(ctx, c.breaker, func(ctx context.Context) (string, error) {
		return c.client.Get(ctx, key)
	})
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Debug().Err(err).Str("key", key).Msg("Cache read failed")
		}
		metrics.RecordCacheMiss(c.entity)
		return zero, false
	}

	var snap S
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to unmarshal cached entity")
		metrics.RecordCacheMiss(c.entity)
		return zero, false
	}

	metrics.RecordCacheHit(c.entity)
	return c.restore(snap), true
}

// Set caches entity.
func (c *EntityCache[E, S]) Set(ctx context.Context, entity E) {
	raw, err := json.Marshal(c.snapshot(entity))
	if err != nil {
		log.Warn().Err(err).Str("entity", c.entity).Msg("Failed to marshal entity for cache")
		return
	}

	key := c.key(c.idOf(entity))
	err = c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.client.Set(ctx, key, string(raw), c.ttl)
	})
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// OnChange drops the cached copy of a changed record of this cache's entity.
func (c *EntityCache[E, S]) OnChange(ctx context.Context, change shared.Change) {
	if change.Entity != c.entity {
		return
	}

	key := c.key(change.RecordID)
	err := c.breaker.Execute(context.WithoutCancel(ctx), func(ctx context.Context) error {
		return c.client.Delete(ctx, key)
	})
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to invalidate cache entry")
	}
}

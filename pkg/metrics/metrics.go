// Package metrics holds the Prometheus collectors shared across layers.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/pkg/circuitbreaker"
)

var (
	// Business metrics
	changesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uom_changes_total",
			Help: "Total number of committed writes",
		},
		[]string{"entity", "action"},
	)

	// Cache metrics
	cacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	cacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)
)

// RecordCacheHit records a cache hit.
func RecordCacheHit(cache string) {
	cacheHitsTotal.WithLabelValues(cache).Inc()
}

// RecordCacheMiss records a cache miss.
func RecordCacheMiss(cache string) {
	cacheMissesTotal.WithLabelValues(cache).Inc()
}

// RecordBreakerState is a circuitbreaker.Settings.OnStateChange hook.
func RecordBreakerState(name string, _, to circuitbreaker.State) {
	breakerState.WithLabelValues(name).Set(float64(to))
}

// ChangeCounter counts committed writes per entity and action.
type ChangeCounter struct{}

// OnChange implements shared.ChangeListener.
func (ChangeCounter) OnChange(_ context.Context, change shared.Change) {
	changesTotal.WithLabelValues(change.Entity, string(change.Action)).Inc()
}

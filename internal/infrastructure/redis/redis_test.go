package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uom"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uomstatus"
	"github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/config"
	"github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/redis"
	"github.com/mutugading/goapps-backend/services/uom/pkg/circuitbreaker"
)

// setupRedis starts a Redis container and returns a connected client.
func setupRedis(t *testing.T) *redis.Client {
	t.Helper()

	if testing.Short() || os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start Redis container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client, err := redis.NewClient(&config.RedisConfig{Host: host, Port: port.Int()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestEntityCache_Integration(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()

	t.Run("status round trip and invalidation", func(t *testing.T) {
		cache := redis.NewStatusCache(client, redis.NewBreaker(), time.Minute)

		_, ok := cache.Get(ctx, 1)
		assert.False(t, ok)

		cache.Set(ctx, uomstatus.ReconstructStatus(1, "Active", "In use", true))

		got, ok := cache.Get(ctx, 1)
		require.True(t, ok)
		assert.Equal(t, "Active", got.Name())
		assert.True(t, got.IsUsable())

		// Changes to the other entity are ignored.
		cache.OnChange(ctx, shared.Change{Entity: uom.EntityName, RecordID: 1, Action: shared.ActionDeleted})
		_, ok = cache.Get(ctx, 1)
		assert.True(t, ok)

		cache.OnChange(ctx, shared.Change{Entity: uomstatus.EntityName, RecordID: 1, Action: shared.ActionUpdated})
		_, ok = cache.Get(ctx, 1)
		assert.False(t, ok)
	})

	t.Run("uom keeps decimal factor", func(t *testing.T) {
		cache := redis.NewUOMCache(client, redis.NewBreaker(), time.Minute)
		cache.Set(ctx, uom.ReconstructUOM(7, "Gram", "", decimal.RequireFromString("0.001"), 1))

		got, ok := cache.Get(ctx, 7)
		require.True(t, ok)
		assert.Equal(t, "0.001", got.ConversionFactor().String())
		assert.Equal(t, int64(1), got.StatusID())
	})

	t.Run("misses do not open the breaker", func(t *testing.T) {
		breaker := redis.NewBreaker()
		cache := redis.NewUOMCache(client, breaker, time.Minute)

		for id := int64(100); id < 120; id++ {
			_, ok := cache.Get(ctx, id)
			assert.False(t, ok)
		}
		assert.Equal(t, circuitbreaker.StateClosed, breaker.State())
	})
}

func TestTokenBlacklist_Integration(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()
	blacklist := redis.NewTokenBlacklist(client)

	listed, err := blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, listed)

	require.NoError(t, blacklist.Add(ctx, "jti-1", time.Minute))

	listed, err = blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, listed)
}

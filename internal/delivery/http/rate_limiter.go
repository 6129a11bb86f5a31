package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/config"
	"github.com/mutugading/goapps-backend/services/uom/pkg/i18n"
)

const limiterIdleTTL = 5 * time.Minute

type clientLimiters struct {
	read     *rate.Limiter
	write    *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps token buckets per client address, with a tighter bucket
// for writes than for reads.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiters
	lastSweep time.Time
	now       func() time.Time

	readLimit  rate.Limit
	readBurst  int
	writeLimit rate.Limit
	writeBurst int
}

// NewRateLimiter creates a limiter from the rate limit config.
func NewRateLimiter(cfg *config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		clients:    make(map[string]*clientLimiters),
		now:        time.Now,
		readLimit:  rate.Limit(cfg.RequestsPerSecond),
		readBurst:  cfg.BurstSize,
		writeLimit: rate.Limit(cfg.WriteRequestsPerS),
		writeBurst: cfg.WriteBurstSize,
	}
}

// Allow reports whether client may make a request now.
func (rl *RateLimiter) Allow(client string, write bool) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	limiters, ok := rl.clients[client]
	if !ok {
		limiters = &clientLimiters{
			read:  rate.NewLimiter(rl.readLimit, rl.readBurst),
			write: rate.NewLimiter(rl.writeLimit, rl.writeBurst),
		}
		rl.clients[client] = limiters
	}
	limiters.lastSeen = now

	if write {
		return limiters.write.AllowN(now, 1)
	}
	return limiters.read.AllowN(now, 1)
}

// sweep drops clients idle for longer than limiterIdleTTL, at most once per TTL.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < limiterIdleTTL {
		return
	}
	rl.lastSweep = now
	for client, limiters := range rl.clients {
		if now.Sub(limiters.lastSeen) > limiterIdleTTL {
			delete(rl.clients, client)
		}
	}
}

func isWrite(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}

// RateLimit rejects requests over the client's budget with 429 and
// SERVICE_UNAVAILABLE.
func RateLimit(limiter *RateLimiter, t *ErrorTranslator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP(), isWrite(c.Request.Method)) {
			c.Header("Retry-After", "1")
			t.Abort(c, http.StatusTooManyRequests, shared.KindServiceUnavailable, i18n.KeyRateLimited)
			return
		}
		c.Next()
	}
}

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/config"
	"github.com/mutugading/goapps-backend/services/uom/pkg/i18n"
)

// HealthChecker reports whether a dependency is ready to serve.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// RouterOptions holds the collaborators of the router. Health and Blacklist
// are optional.
type RouterOptions struct {
	Config    *config.Config
	Resolver  *i18n.Resolver
	Health    HealthChecker
	Blacklist TokenBlacklistChecker
}

// NewRouter builds the gin engine with middleware, health, metrics and API routes.
func NewRouter(opts RouterOptions, statuses *UOMStatusHandler, uoms *UOMHandler) *gin.Engine {
	registerValidators()

	cfg := opts.Config
	translator := NewErrorTranslator(opts.Resolver)

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.ContextWithFallback = true

	engine.Use(
		RequestID(),
		Recovery(translator),
		Tracing(),
		Metrics(),
		AccessLog(),
		translator.Middleware(),
	)

	engine.NoRoute(func(c *gin.Context) {
		translator.Abort(c, http.StatusNotFound, shared.KindResourceNotFound, i18n.KeyRouteNotFound, c.Request.Method, c.Request.URL.Path)
	})
	engine.NoMethod(func(c *gin.Context) {
		translator.Abort(c, http.StatusMethodNotAllowed, shared.KindInvalidData, i18n.KeyMethodNotSupported, c.Request.Method)
	})

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	engine.GET("/readyz", readyHandler(opts.Health))
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(RateLimit(NewRateLimiter(&cfg.RateLimit), translator))
	}
	api.Use(Timeout(cfg.Server.RequestTimeout))
	if cfg.JWT.Enabled {
		api.Use(Auth(&cfg.JWT, opts.Blacklist, translator))
	}

	statuses.RegisterRoutes(api, translator)
	uoms.RegisterRoutes(api, translator)

	return engine
}

func readyHandler(checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if checker != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := checker.Health(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

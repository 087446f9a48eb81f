package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/middleware"
	"github.com/finbooks/bookkeeping_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServicesContainer,
) {
	registerBindingValidations()

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes
	registerAuthRoutes(r, cfg)

	// API v1 routes behind auth
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServicesContainer,
) {
	ipLimiter := limiter.New(memory.NewStore(), limiter.Rate{
		Period: time.Minute,
		Limit:  int64(cfg.RateLimitPerMinute),
	})

	v1 := r.Group("/api/v1",
		middleware.RateLimit(ipLimiter),
		middleware.AuthMiddleware(cfg.JWTSecret),
	)

	registerAccountRoutes(v1, services.Account, services.Ledger, cfg.CurrencyCode)
	registerJournalRoutes(v1, services.Journal)
	registerReportingRoutes(v1, services.Reporting, cfg.CurrencyCode)
}

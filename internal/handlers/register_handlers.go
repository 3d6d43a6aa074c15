package handlers

import (
	"github.com/SscSPs/taskmgr_backend/cmd/docs"
	portssvc "github.com/SscSPs/taskmgr_backend/internal/core/ports/services"
	"github.com/SscSPs/taskmgr_backend/internal/middleware"
	"github.com/SscSPs/taskmgr_backend/internal/platform/config"
	"github.com/SscSPs/taskmgr_backend/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// db may be nil, in which case /health does not touch the database.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthog *utils.PosthogClientWrapper,
	db Pinger,
) error {
	r.GET("/health", getHealth(db))

	if err := setupAPIV1Routes(r, cfg, services, posthog); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthog *utils.PosthogClientWrapper,
) error {
	ipLimiter, err := middleware.NewIPRateLimiter(cfg.AuthRateLimit)
	if err != nil {
		return err
	}
	limit := middleware.RateLimit(ipLimiter)
	requireAuth := middleware.AuthMiddleware(services.TokenService)

	v1 := r.Group("/api/v1")

	registerAuthRoutes(v1, newAuthHandler(services, posthog), limit, requireAuth)
	registerGoogleOAuthRoutes(v1, newGoogleOAuthHandler(services, posthog), limit)

	protected := v1.Group("", requireAuth, middleware.PosthogMiddleware(posthog))
	registerUserRoutes(protected, services.User)

	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

package handlers

import (
	"fmt"

	"github.com/SscSPs/social_dashboard/cmd/docs"
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	portssvc "github.com/SscSPs/social_dashboard/internal/core/ports/services"
	"github.com/SscSPs/social_dashboard/internal/middleware"
	"github.com/SscSPs/social_dashboard/internal/platform/config"
	"github.com/SscSPs/social_dashboard/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthog *utils.PosthogClientWrapper,
) error {
	if err := registerValidators(); err != nil {
		return err
	}

	var limit gin.HandlerFunc
	if cfg.AuthRateLimit != "" {
		limiter, err := middleware.NewMemoryRateLimiter(cfg.AuthRateLimit)
		if err != nil {
			return fmt.Errorf("invalid auth rate limit %q: %w", cfg.AuthRateLimit, err)
		}
		limit = middleware.RateLimit(limiter)
	}

	r.GET("/health", getHealth)

	// Browser clients authenticate with the access cookie, API clients with the bearer header.
	api := r.Group("/api", middleware.CookieAuth(cfg.JWTSecret, cfg.AccessTokenCookieName))

	registerAuthRoutes(api, cfg, services, posthog, limit)
	registerGoogleOAuthRoutes(api, cfg, services)
	registerProviderRoutes(api, cfg, services, posthog)

	protected := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret, cfg.AccessTokenCookieName))
	registerUserRoutes(protected, services.User)
	registerPostRoutes(protected, services, posthog)
	registerOrganizationRoutes(protected, services.Organization)
	registerCaptionRoutes(protected, services.Caption, limit)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// registerValidators adds the custom binding tags used by the dto package.
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
		_, valid := domain.ParsePlatform(fl.Field().String())
		return valid
	})
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/social_dashboard/internal/ai"
	"github.com/SscSPs/social_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/social_dashboard/internal/core/services"
	"github.com/SscSPs/social_dashboard/internal/handlers"
	"github.com/SscSPs/social_dashboard/internal/mailer"
	"github.com/SscSPs/social_dashboard/internal/middleware"
	"github.com/SscSPs/social_dashboard/internal/platform/config"
	"github.com/SscSPs/social_dashboard/internal/providers/facebook"
	"github.com/SscSPs/social_dashboard/internal/providers/linkedin"
	"github.com/SscSPs/social_dashboard/internal/providers/media"
	"github.com/SscSPs/social_dashboard/internal/repositories/cache/memstore"
	"github.com/SscSPs/social_dashboard/internal/repositories/cache/redisstore"
	"github.com/SscSPs/social_dashboard/internal/repositories/database/pgsql"
	"github.com/SscSPs/social_dashboard/internal/utils"
	"github.com/SscSPs/social_dashboard/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Social Media Dashboard API
// @version 1.0
// @description Connects Facebook and LinkedIn accounts, publishes posts to them and reads their feeds.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. Browsers may use the access token cookie instead.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	stateStore, closeStore := newOAuthStateStore(ctx, cfg, logger)
	defer closeStore()

	posthog := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthog.Close()

	container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool, stateStore), newDependencies(cfg, logger))

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		middleware.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.PosthogMiddleware(posthog),
	)
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, container, posthog); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// newOAuthStateStore uses Redis when configured so several instances can share pending states.
func newOAuthStateStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.OAuthStateStore, func()) {
	if cfg.RedisURL == "" {
		logger.Warn("REDIS_URL not set, OAuth states are kept in process memory")
		return memstore.NewOAuthStateStore(memstore.DefaultSize, cfg.OAuthStateTTL), func() {}
	}
	client, err := redisstore.Connect(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Redis connection established.")
	return redisstore.NewOAuthStateStore(client), func() { _ = client.Close() }
}

// newDependencies builds the outbound clients. Integrations without credentials stay nil
// and the services answer 503 for them.
func newDependencies(cfg *config.Config, logger *slog.Logger) services.Dependencies {
	httpClient := &http.Client{Timeout: cfg.ProviderHTTPTimeout}
	deps := services.Dependencies{
		Media: media.NewFetcher(httpClient, media.DefaultMaxBytes),
	}

	if cfg.FacebookAppID != "" {
		deps.Facebook = facebook.NewClient(facebook.Config{
			AppID:       cfg.FacebookAppID,
			AppSecret:   cfg.FacebookAppSecret,
			RedirectURL: cfg.FacebookRedirectURL,
			GraphURL:    cfg.FacebookGraphURL,
			Version:     cfg.FacebookGraphVersion,
			HTTPClient:  httpClient,
		})
	} else {
		logger.Warn("Facebook is not configured")
	}

	if cfg.LinkedInClientID != "" {
		deps.LinkedIn = linkedin.NewClient(linkedin.Config{
			ClientID:     cfg.LinkedInClientID,
			ClientSecret: cfg.LinkedInClientSecret,
			RedirectURL:  cfg.LinkedInRedirectURL,
			AuthURL:      cfg.LinkedInAuthURL,
			APIURL:       cfg.LinkedInAPIURL,
			HTTPClient:   httpClient,
		})
	} else {
		logger.Warn("LinkedIn is not configured")
	}

	if cfg.CaptionsEnabled() {
		generator, err := ai.NewOpenAICaptionGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		if err != nil {
			logger.Error("Failed to create caption generator, captions disabled", slog.String("error", err.Error()))
		} else {
			deps.Captions = generator
		}
	}

	if cfg.SMTPConfigured() {
		deps.Mailer = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			ResetTTL: cfg.PasswordResetTTL,
		})
	} else {
		logger.Warn("SMTP is not configured, reset links are only logged")
		deps.Mailer = &mailer.LogMailer{ResetTTL: cfg.PasswordResetTTL}
	}
	return deps
}

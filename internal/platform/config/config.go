package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Refresh Token Config
	RefreshTokenExpiryDuration time.Duration
	AccessTokenCookieName      string
	RefreshTokenCookieName     string
	CookieSecure               bool

	FrontendBaseURL    string
	CORSAllowedOrigins []string

	// OAuth state store; empty RedisURL selects the in-process store.
	RedisURL      string
	OAuthStateTTL time.Duration

	ProviderHTTPTimeout time.Duration

	FacebookAppID        string
	FacebookAppSecret    string
	FacebookRedirectURL  string
	FacebookGraphURL     string
	FacebookGraphVersion string

	LinkedInClientID     string
	LinkedInClientSecret string
	LinkedInRedirectURL  string
	LinkedInAPIURL       string
	LinkedInAuthURL      string

	// External OAuth Providers
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	SMTPFrom         string
	PasswordResetTTL time.Duration

	PosthogAPIKey string
	AuthRateLimit string
}

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "15m")
	v.SetDefault("JWT_ISSUER", "social-dashboard")
	v.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	v.SetDefault("ACCESS_TOKEN_COOKIE_NAME", "accessToken")
	v.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "refreshToken")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("OAUTH_STATE_TTL", "10m")
	v.SetDefault("PROVIDER_HTTP_TIMEOUT", "30s")
	v.SetDefault("FACEBOOK_APP_ID", "")
	v.SetDefault("FACEBOOK_APP_SECRET", "")
	v.SetDefault("FACEBOOK_REDIRECT_URL", "http://localhost:8080/api/facebook/callback")
	v.SetDefault("FACEBOOK_GRAPH_URL", "https://graph.facebook.com")
	v.SetDefault("FACEBOOK_GRAPH_VERSION", "v19.0")
	v.SetDefault("LINKEDIN_CLIENT_ID", "")
	v.SetDefault("LINKEDIN_CLIENT_SECRET", "")
	v.SetDefault("LINKEDIN_REDIRECT_URL", "http://localhost:8080/api/linkedin/callback")
	v.SetDefault("LINKEDIN_API_URL", "https://api.linkedin.com")
	v.SetDefault("LINKEDIN_AUTH_URL", "https://www.linkedin.com")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_BASE_URL", "")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "no-reply@localhost")
	v.SetDefault("PASSWORD_RESET_TTL", "1h")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("AUTH_RATE_LIMIT", "10-M")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return loadFrom(viper.New())
}

func loadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),

		JWTSecret: v.GetString("JWT_SECRET"),
		JWTIssuer: v.GetString("JWT_ISSUER"),

		AccessTokenCookieName:  v.GetString("ACCESS_TOKEN_COOKIE_NAME"),
		RefreshTokenCookieName: v.GetString("REFRESH_TOKEN_COOKIE_NAME"),
		CookieSecure:           v.GetBool("COOKIE_SECURE"),

		FrontendBaseURL: strings.TrimRight(v.GetString("FRONTEND_BASE_URL"), "/"),
		RedisURL:        v.GetString("REDIS_URL"),

		FacebookAppID:        v.GetString("FACEBOOK_APP_ID"),
		FacebookAppSecret:    v.GetString("FACEBOOK_APP_SECRET"),
		FacebookRedirectURL:  v.GetString("FACEBOOK_REDIRECT_URL"),
		FacebookGraphURL:     strings.TrimRight(v.GetString("FACEBOOK_GRAPH_URL"), "/"),
		FacebookGraphVersion: v.GetString("FACEBOOK_GRAPH_VERSION"),

		LinkedInClientID:     v.GetString("LINKEDIN_CLIENT_ID"),
		LinkedInClientSecret: v.GetString("LINKEDIN_CLIENT_SECRET"),
		LinkedInRedirectURL:  v.GetString("LINKEDIN_REDIRECT_URL"),
		LinkedInAPIURL:       strings.TrimRight(v.GetString("LINKEDIN_API_URL"), "/"),
		LinkedInAuthURL:      strings.TrimRight(v.GetString("LINKEDIN_AUTH_URL"), "/"),

		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),

		OpenAIAPIKey:  v.GetString("OPENAI_API_KEY"),
		OpenAIModel:   v.GetString("OPENAI_MODEL"),
		OpenAIBaseURL: v.GetString("OPENAI_BASE_URL"),

		SMTPHost:     v.GetString("SMTP_HOST"),
		SMTPPort:     v.GetInt("SMTP_PORT"),
		SMTPUsername: v.GetString("SMTP_USERNAME"),
		SMTPPassword: v.GetString("SMTP_PASSWORD"),
		SMTPFrom:     v.GetString("SMTP_FROM"),

		PosthogAPIKey: v.GetString("POSTHOG_API_KEY"),
		AuthRateLimit: v.GetString("AUTH_RATE_LIMIT"),
	}

	cfg.JWTExpiryDuration = durationOrDefault(v, "JWT_EXPIRY_DURATION", 15*time.Minute)
	cfg.RefreshTokenExpiryDuration = durationOrDefault(v, "REFRESH_TOKEN_EXPIRY_DURATION", 7*24*time.Hour)
	cfg.OAuthStateTTL = durationOrDefault(v, "OAUTH_STATE_TTL", 10*time.Minute)
	cfg.ProviderHTTPTimeout = durationOrDefault(v, "PROVIDER_HTTP_TIMEOUT", 30*time.Second)
	cfg.PasswordResetTTL = durationOrDefault(v, "PASSWORD_RESET_TTL", time.Hour)

	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{cfg.FrontendBaseURL}
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.FacebookAppID == "" || cfg.FacebookAppSecret == "" {
		log.Println("Warning: FACEBOOK_APP_ID/FACEBOOK_APP_SECRET not set. Facebook connect will not function.")
	}
	if cfg.LinkedInClientID == "" || cfg.LinkedInClientSecret == "" {
		log.Println("Warning: LINKEDIN_CLIENT_ID/LINKEDIN_CLIENT_SECRET not set. LinkedIn connect will not function.")
	}
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google OAuth will not function.")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set. Caption generation is disabled.")
	}

	return cfg, nil
}

// durationOrDefault parses a duration key, falling back with a warning on bad input.
func durationOrDefault(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.TrimRight(part, "/"))
		}
	}
	return out
}

// SMTPConfigured reports whether outgoing email can be sent.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != ""
}

// CaptionsEnabled reports whether an LLM key is configured.
func (c *Config) CaptionsEnabled() bool {
	return c.OpenAIAPIKey != ""
}

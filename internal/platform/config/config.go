package config

import (
	"log"
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

	// APIOrigin is the public base URL of this API, used to build verification links.
	APIOrigin       string
	FrontendBaseURL string
	RequestTimeout  time.Duration

	// Access/Refresh token config. Each token type is signed with its own secret.
	AccessTokenSecret          string
	AccessTokenExpiryDuration  time.Duration
	RefreshTokenSecret         string
	RefreshTokenExpiryDuration time.Duration
	JWTIssuer                  string

	// One-time token config
	EmailVerificationTokenLength int
	EmailVerificationTokenTTL    time.Duration
	PasswordResetTokenLength     int
	PasswordResetTokenTTL        time.Duration

	// Outbound email
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`

	// AuthRateLimit uses the ulule/limiter formatted syntax, e.g. "10-H".
	AuthRateLimit string

	PosthogAPIKey   string
	PosthogEndpoint string
}

const (
	defaultAccessTokenSecret  = "default_insecure_access_secret_please_change_this_!@#$"
	defaultRefreshTokenSecret = "default_insecure_refresh_secret_please_change_this_!@#$"
)

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("API_ORIGIN", "http://localhost:8080")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")
	viper.SetDefault("ACCESS_TOKEN_SECRET", defaultAccessTokenSecret)
	viper.SetDefault("ACCESS_TOKEN_EXPIRY_DURATION", "15m")
	viper.SetDefault("REFRESH_TOKEN_SECRET", defaultRefreshTokenSecret)
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "720h")
	viper.SetDefault("JWT_ISSUER", "taskmgr-backend")
	viper.SetDefault("EMAIL_VERIFICATION_TOKEN_LENGTH", 15)
	viper.SetDefault("EMAIL_VERIFICATION_TOKEN_TTL", "30m")
	viper.SetDefault("PASSWORD_RESET_TOKEN_LENGTH", 6)
	viper.SetDefault("PASSWORD_RESET_TOKEN_TTL", "15m")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("EMAIL_FROM", "no-reply@taskmgr.local")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("AUTH_RATE_LIMIT", "10-H")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.AccessTokenSecret = viper.GetString("ACCESS_TOKEN_SECRET")
	if cfg.AccessTokenSecret == "" || cfg.AccessTokenSecret == defaultAccessTokenSecret {
		cfg.AccessTokenSecret = defaultAccessTokenSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: ACCESS_TOKEN_SECRET is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
	}

	cfg.RefreshTokenSecret = viper.GetString("REFRESH_TOKEN_SECRET")
	if cfg.RefreshTokenSecret == "" || cfg.RefreshTokenSecret == defaultRefreshTokenSecret {
		cfg.RefreshTokenSecret = defaultRefreshTokenSecret
		log.Println("Warning: REFRESH_TOKEN_SECRET is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
	}

	cfg.AccessTokenExpiryDuration = durationOrDefault("ACCESS_TOKEN_EXPIRY_DURATION", 15*time.Minute)
	cfg.RefreshTokenExpiryDuration = durationOrDefault("REFRESH_TOKEN_EXPIRY_DURATION", 30*24*time.Hour)
	cfg.EmailVerificationTokenTTL = durationOrDefault("EMAIL_VERIFICATION_TOKEN_TTL", 30*time.Minute)
	cfg.PasswordResetTokenTTL = durationOrDefault("PASSWORD_RESET_TOKEN_TTL", 15*time.Minute)
	cfg.RequestTimeout = durationOrDefault("REQUEST_TIMEOUT", 10*time.Second)

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "taskmgr-backend"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.EmailVerificationTokenLength = positiveIntOrDefault("EMAIL_VERIFICATION_TOKEN_LENGTH", 15)
	cfg.PasswordResetTokenLength = positiveIntOrDefault("PASSWORD_RESET_TOKEN_LENGTH", 6)

	cfg.SMTPHost = viper.GetString("SMTP_HOST")
	cfg.SMTPPort = viper.GetInt("SMTP_PORT")
	cfg.SMTPUsername = viper.GetString("SMTP_USERNAME")
	cfg.SMTPPassword = viper.GetString("SMTP_PASSWORD")
	cfg.EmailFrom = viper.GetString("EMAIL_FROM")
	if cfg.SMTPHost == "" {
		log.Println("Warning: SMTP_HOST not set. Outgoing emails will only be logged.")
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")

	// Log warnings for missing critical OAuth ENV variables
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google OAuth will not function.")
	}
	if cfg.GoogleClientSecret == "" {
		log.Println("Warning: GOOGLE_CLIENT_SECRET not set. Google OAuth will not function.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.APIOrigin = viper.GetString("API_ORIGIN")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	return cfg, nil
}

// durationOrDefault parses a duration key (e.g. "15m", "720h"), falling back on invalid input.
func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func positiveIntOrDefault(key string, fallback int) int {
	v := viper.GetInt(key)
	if v <= 0 {
		log.Printf("Warning: Invalid value for %s. Defaulting to %d.\n", key, fallback)
		return fallback
	}
	return v
}

package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Rate limiting, e.g. "100-M" for 100 requests per minute.
	RateLimit string

	// Account directory lookup bounds.
	DirectoryTimeout time.Duration
	DirectoryRetries int

	// Ledger report cache.
	ReportCacheTTL  time.Duration
	ReportCacheSize int

	// PostHog sink for posted/cancelled entry notifications. Empty disables it.
	PostHogAPIKey   string
	PostHogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "ledger-engine")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("DIRECTORY_TIMEOUT", "2s")
	viper.SetDefault("DIRECTORY_RETRIES", 3)
	viper.SetDefault("REPORT_CACHE_TTL", "30s")
	viper.SetDefault("REPORT_CACHE_SIZE", 256)
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://us.i.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	directoryTimeoutStr := viper.GetString("DIRECTORY_TIMEOUT")
	directoryTimeout, err := time.ParseDuration(directoryTimeoutStr)
	if err != nil {
		directoryTimeout = 2 * time.Second
		log.Printf("Warning: Invalid value for DIRECTORY_TIMEOUT ('%s'). Defaulting to %s.\n", directoryTimeoutStr, directoryTimeout.String())
	}
	cfg.DirectoryTimeout = directoryTimeout
	cfg.DirectoryRetries = viper.GetInt("DIRECTORY_RETRIES")

	cacheTTLStr := viper.GetString("REPORT_CACHE_TTL")
	cacheTTL, err := time.ParseDuration(cacheTTLStr)
	if err != nil {
		cacheTTL = 30 * time.Second
		log.Printf("Warning: Invalid value for REPORT_CACHE_TTL ('%s'). Defaulting to %s.\n", cacheTTLStr, cacheTTL.String())
	}
	cfg.ReportCacheTTL = cacheTTL
	cfg.ReportCacheSize = viper.GetInt("REPORT_CACHE_SIZE")

	cfg.PostHogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PostHogEndpoint = viper.GetString("POSTHOG_ENDPOINT")
	if cfg.PostHogAPIKey == "" {
		log.Println("Warning: POSTHOG_API_KEY not set. Entry notifications will only be logged.")
	}

	return cfg, nil
}

package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseDriver string // "pgsql" or "sqlite"
	DatabaseURL    string
	SQLitePath     string
	Port           string
	IsProduction   bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Single-operator credentials; the password is stored as a bcrypt hash.
	AuthUsername     string
	AuthPasswordHash string

	// ISO 4217 code used for formatted amounts in responses.
	CurrencyCode string

	// Requests per minute per client IP on the API group.
	RateLimitPerMinute int

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("SQLITE_PATH", "bookkeeping.db")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "bookkeeping-app")
	viper.SetDefault("AUTH_USERNAME", "")
	viper.SetDefault("AUTH_PASSWORD_HASH", "")
	viper.SetDefault("CURRENCY_CODE", "USD")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseDriver = viper.GetString("DB_DRIVER")
	switch cfg.DatabaseDriver {
	case "pgsql", "sqlite":
	default:
		log.Printf("Warning: unknown DB_DRIVER %q. Defaulting to sqlite.\n", cfg.DatabaseDriver)
		cfg.DatabaseDriver = "sqlite"
	}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseDriver == "pgsql" && cfg.DatabaseURL == "" {
		log.Println("Warning: DB_DRIVER is pgsql but PGSQL_URL is not set.")
	}
	cfg.SQLitePath = viper.GetString("SQLITE_PATH")

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "bookkeeping-app"
	}

	cfg.AuthUsername = viper.GetString("AUTH_USERNAME")
	cfg.AuthPasswordHash = viper.GetString("AUTH_PASSWORD_HASH")
	if cfg.AuthUsername == "" || cfg.AuthPasswordHash == "" {
		log.Println("Warning: AUTH_USERNAME or AUTH_PASSWORD_HASH not set. Login will reject every request.")
	}

	cfg.CurrencyCode = viper.GetString("CURRENCY_CODE")
	if cfg.CurrencyCode == "" {
		cfg.CurrencyCode = "USD"
	}

	cfg.RateLimitPerMinute = viper.GetInt("RATE_LIMIT_PER_MINUTE")
	if cfg.RateLimitPerMinute <= 0 {
		cfg.RateLimitPerMinute = 120
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	return cfg, nil
}

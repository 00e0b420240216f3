package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	LogLevel      slog.Level
	DBMaxConns    int32

	JWTSecret string
	JWTIssuer string

	// Transfer engine
	LockTimeout     time.Duration
	TransferTimeout time.Duration
	StartingBalance decimal.Decimal

	RateLimit          string
	RateLimitRedisURL  string // empty keeps rate-limit counters in process memory
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_MAX_CONNS", 0)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "money-transfer-engine")
	v.SetDefault("LOCK_TIMEOUT", "5s")
	v.SetDefault("TRANSFER_TIMEOUT", "10s")
	v.SetDefault("STARTING_BALANCE", "5000.00")
	v.SetDefault("RATE_LIMIT", "100-S")
	v.SetDefault("RATE_LIMIT_REDIS_URL", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:   v.GetString("PGSQL_URL"),
		Port:          v.GetString("PORT"),
		IsProduction:  v.GetBool("IS_PRODUCTION"),
		EnableDBCheck: v.GetBool("ENABLE_DB_CHECK"),
		DBMaxConns:    v.GetInt32("DB_MAX_CONNS"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTIssuer:     v.GetString("JWT_ISSUER"),
		RateLimit:     v.GetString("RATE_LIMIT"),

		RateLimitRedisURL: v.GetString("RATE_LIMIT_REDIS_URL"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	var err error
	if cfg.LockTimeout, err = positiveDuration(v, "LOCK_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.TransferTimeout, err = positiveDuration(v, "TRANSFER_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.TransferTimeout <= cfg.LockTimeout {
		log.Printf("Warning: TRANSFER_TIMEOUT (%s) does not exceed LOCK_TIMEOUT (%s); lock waits will surface as deadline errors.\n", cfg.TransferTimeout, cfg.LockTimeout)
	}

	cfg.StartingBalance, err = decimal.NewFromString(v.GetString("STARTING_BALANCE"))
	if err != nil {
		return nil, fmt.Errorf("invalid STARTING_BALANCE: %w", err)
	}
	if cfg.StartingBalance.IsNegative() || !cfg.StartingBalance.Equal(cfg.StartingBalance.Truncate(2)) {
		return nil, fmt.Errorf("invalid STARTING_BALANCE %s: must be non-negative with at most two decimals", cfg.StartingBalance)
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}

func positiveDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

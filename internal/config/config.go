package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// HTTP
	HTTPHost string `env:"HTTP_HOST" default:"127.0.0.1"`
	HTTPPort int    `env:"HTTP_PORT" default:"8080"`

	// Catalog spreadsheet, loaded once at startup
	CatalogPath string `env:"CATALOG_PATH" default:"CS_IA_Anime_Spreadsheet.csv"`

	// Record stores. A postgres:// URL selects postgres, anything else is a sqlite file.
	AccountsDatabaseURL string `env:"ACCOUNTS_DATABASE_URL" default:"users.db"`
	ReviewsDatabaseURL  string `env:"REVIEWS_DATABASE_URL" default:"reviews.db"`

	// Sessions
	SessionSecret string        `env:"SESSION_SECRET" required:"true"`
	SessionMaxAge time.Duration `env:"SESSION_MAX_AGE" default:"24h"`

	// Reviews written by this account are listed first on every anime page
	SpecialUsername string `env:"SPECIAL_USERNAME" default:"Creator"`

	// Login throttle
	LoginRatePerMinute int    `env:"LOGIN_RATE_PER_MINUTE" default:"10"`
	LoginBurst         int    `env:"LOGIN_BURST" default:"5"`
	RedisURL           string `env:"REDIS_URL"` // empty keeps the limiter in-process

	// Logging
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

// LoadConfig loads configuration from environment variables, reading .env first when present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		// a missing .env is fine, the process environment still applies
		slog.Debug("no .env file loaded", "error", err)
	}

	config := &Config{}

	if err := loadEnvString(&config.GoEnv, "GO_ENV", "development"); err != nil {
		return nil, err
	}

	// HTTP
	if err := loadEnvString(&config.HTTPHost, "HTTP_HOST", "127.0.0.1"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}

	// Catalog
	if err := loadEnvString(&config.CatalogPath, "CATALOG_PATH", "CS_IA_Anime_Spreadsheet.csv"); err != nil {
		return nil, err
	}

	// Databases
	if err := loadEnvString(&config.AccountsDatabaseURL, "ACCOUNTS_DATABASE_URL", "users.db"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.ReviewsDatabaseURL, "REVIEWS_DATABASE_URL", "reviews.db"); err != nil {
		return nil, err
	}

	// Sessions
	if err := loadEnvStringRequired(&config.SessionSecret, "SESSION_SECRET"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.SessionMaxAge, "SESSION_MAX_AGE", 24*time.Hour); err != nil {
		return nil, err
	}

	if err := loadEnvString(&config.SpecialUsername, "SPECIAL_USERNAME", "Creator"); err != nil {
		return nil, err
	}

	// Login throttle
	if err := loadEnvInt(&config.LoginRatePerMinute, "LOGIN_RATE_PER_MINUTE", 10); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.LoginBurst, "LOGIN_BURST", 5); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.RedisURL, "REDIS_URL", ""); err != nil {
		return nil, err
	}

	// Logging
	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "info"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogFormat, "LOG_FORMAT", "text"); err != nil {
		return nil, err
	}

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}

	if strings.TrimSpace(c.CatalogPath) == "" {
		errors = append(errors, "CATALOG_PATH must not be empty")
	}

	if c.AccountsDatabaseURL == "" || c.ReviewsDatabaseURL == "" {
		errors = append(errors, "ACCOUNTS_DATABASE_URL and REVIEWS_DATABASE_URL must not be empty")
	}

	// the cookie store signs sessions with this key
	if len(c.SessionSecret) < 32 {
		errors = append(errors, "SESSION_SECRET should be at least 32 characters long")
	}
	if c.SessionMaxAge <= 0 {
		errors = append(errors, "SESSION_MAX_AGE must be positive")
	}

	if c.LoginRatePerMinute < 1 || c.LoginBurst < 1 {
		errors = append(errors, "LOGIN_RATE_PER_MINUTE and LOGIN_BURST must be at least 1")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// HTTPAddr is the listen address for the web server.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

// Helper function to check if slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

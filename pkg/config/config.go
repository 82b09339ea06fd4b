package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the volunteer API
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Auth         AuthConfig
	Registration RegistrationConfig
	Live         LiveConfig
	LogLevel     string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port        string
	GinMode     string
	CORSOrigins []string
}

// DatabaseConfig selects postgres (URL) or sqlite (Path)
type DatabaseConfig struct {
	URL  string
	Path string
}

// RedisConfig enables the redis rate limiter when URL is set
type RedisConfig struct {
	URL string
}

// AuthConfig holds admin and API key secrets
type AuthConfig struct {
	JWTSecret     string
	MasterSecret  string
	AdminUsername string
	AdminPassword string
	TokenTTL      time.Duration
}

// RegistrationConfig tunes the registration form sessions
type RegistrationConfig struct {
	CatalogPath       string
	ConfirmationDelay time.Duration
	DisplayDuration   time.Duration
	SessionTTL        time.Duration
	SweepInterval     time.Duration
}

// LiveConfig sets the cosmetic landing page timers
type LiveConfig struct {
	NotificationInterval time.Duration
	AnalyticsInterval    time.Duration
}

// LoadEnvFiles loads the first .env found in the working directory or its
// parents. A missing file is not an error; a malformed one is.
func LoadEnvFiles() error {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err != nil {
				return fmt.Errorf("load %s: %w", p, err)
			}
			return nil
		}
	}
	return nil
}

// Load reads configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8000"),
			GinMode:     getEnv("GIN_MODE", ""),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			URL:  getEnv("DATABASE_URL", ""),
			Path: getEnv("DATA_PATH", "esamadhan.db"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			MasterSecret:  getEnv("API_MASTER_SECRET", ""),
			AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
			AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
			TokenTTL:      getEnvAsDuration("TOKEN_TTL", 24*time.Hour),
		},
		Registration: RegistrationConfig{
			CatalogPath:       getEnv("CATALOG_PATH", ""),
			ConfirmationDelay: getEnvAsDuration("CONFIRMATION_DELAY", 2*time.Second),
			DisplayDuration:   getEnvAsDuration("CONFIRMATION_DISPLAY", 5*time.Second),
			SessionTTL:        getEnvAsDuration("SESSION_TTL", 30*time.Minute),
			SweepInterval:     getEnvAsDuration("SESSION_SWEEP_INTERVAL", time.Minute),
		},
		Live: LiveConfig{
			NotificationInterval: getEnvAsDuration("LIVE_INTERVAL", 15*time.Second),
			AnalyticsInterval:    getEnvAsDuration("ANALYTICS_INTERVAL", 10*time.Second),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port: %q", c.Server.Port)
	}
	if c.Database.URL == "" && c.Database.Path == "" {
		return fmt.Errorf("either DATABASE_URL or DATA_PATH is required")
	}
	for name, d := range map[string]time.Duration{
		"CONFIRMATION_DELAY":     c.Registration.ConfirmationDelay,
		"CONFIRMATION_DISPLAY":   c.Registration.DisplayDuration,
		"SESSION_TTL":            c.Registration.SessionTTL,
		"SESSION_SWEEP_INTERVAL": c.Registration.SweepInterval,
		"LIVE_INTERVAL":          c.Live.NotificationInterval,
		"ANALYTICS_INTERVAL":     c.Live.AnalyticsInterval,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the demo client
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Moderation backend
	ModerationURL     string
	ModerationTimeout time.Duration

	// Notifications
	NotificationTTL time.Duration

	// Admin log viewer
	AdminLogLimit int

	// Backend health probe
	HealthCheckSchedule string

	// Composer defaults
	DefaultAuthor string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		ModerationURL:     getEnv("MODERATION_URL", ""),
		ModerationTimeout: getDurationEnv("MODERATION_TIMEOUT", 30*time.Second),

		NotificationTTL: getDurationEnv("NOTIFICATION_TTL", 3*time.Second),

		AdminLogLimit: getIntEnv("ADMIN_LOG_LIMIT", 50),

		// Every 5 minutes (cron with seconds field)
		HealthCheckSchedule: getEnv("HEALTH_CHECK_SCHEDULE", "0 */5 * * * *"),

		DefaultAuthor: getEnv("DEFAULT_AUTHOR", "DemoUser"),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ModerationURL == "" {
		return fmt.Errorf("MODERATION_URL is required")
	}

	if _, err := url.ParseRequestURI(c.ModerationURL); err != nil {
		return fmt.Errorf("MODERATION_URL is not a valid URL: %w", err)
	}

	if c.ModerationTimeout <= 0 {
		return fmt.Errorf("MODERATION_TIMEOUT must be positive")
	}

	if c.NotificationTTL <= 0 {
		return fmt.Errorf("NOTIFICATION_TTL must be positive")
	}

	if c.AdminLogLimit <= 0 {
		return fmt.Errorf("ADMIN_LOG_LIMIT must be positive")
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

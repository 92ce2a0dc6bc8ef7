// Package config loads application configuration from environment variables.
// All variables use the FORGE_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Cache       CacheConfig
	AI          AIConfig
	Auth        AuthConfig
	Log         LogConfig
	CatalogPath string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
	Host string
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL disables
// persistence; generated lessons are then served but not saved.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// CacheConfig holds Redis connection settings. An empty URL disables the
// dashboard list cache.
type CacheConfig struct {
	URL string
}

// AIConfig holds generation gateway settings.
type AIConfig struct {
	APIKey       string
	BaseURL      string
	Model        string
	ImageModel   string
	Timeout      time.Duration // per text-generation call
	ImageSpacing time.Duration // delay between image requests in a batch
}

// AuthConfig holds bearer token verification settings.
type AuthConfig struct {
	JWTSecret string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with FORGE_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("FORGE_SERVER_PORT", 8080),
			Host: envStr("FORGE_SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			URL:      envStr("FORGE_DATABASE_URL", ""),
			MaxConns: envInt("FORGE_DATABASE_MAX_CONNS", 10),
			MinConns: envInt("FORGE_DATABASE_MIN_CONNS", 2),
		},
		Cache: CacheConfig{
			URL: envStr("FORGE_CACHE_URL", ""),
		},
		AI: AIConfig{
			APIKey:       envStr("FORGE_AI_API_KEY", ""),
			BaseURL:      envStr("FORGE_AI_BASE_URL", ""),
			Model:        envStr("FORGE_AI_MODEL", ""),
			ImageModel:   envStr("FORGE_AI_IMAGE_MODEL", ""),
			Timeout:      envDuration("FORGE_AI_TIMEOUT", 90*time.Second),
			ImageSpacing: envDuration("FORGE_AI_IMAGE_SPACING", time.Second),
		},
		Auth: AuthConfig{
			JWTSecret: envStr("FORGE_AUTH_JWT_SECRET", "change-me-in-production"),
		},
		Log: LogConfig{
			Level:  envStr("FORGE_LOG_LEVEL", "info"),
			Format: envStr("FORGE_LOG_FORMAT", "json"),
		},
		CatalogPath: envStr("FORGE_CATALOG_PATH", ""),
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("FORGE_SERVER_PORT must be a valid port, got %d", c.Server.Port)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("FORGE_DATABASE_MIN_CONNS (%d) exceeds FORGE_DATABASE_MAX_CONNS (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	// A missing API key is not fatal at startup: the generate endpoints
	// report the misconfiguration per request instead.
	return nil
}

// HasAI returns true if the generation gateway credential is configured.
func (c *Config) HasAI() bool {
	return c.AI.APIKey != ""
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

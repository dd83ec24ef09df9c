// Package config loads service configuration from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the chartlog service.
// Environment variables are parsed from the CHARTLOG_ prefix.
type Config struct {
	// Build target selects the high-level environment: local | cloud
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	// Derived or override driver: postgres | sqlite | memory | auto
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Postgres Configuration (cloud target)
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// SQLite Configuration (local target)
	SQLitePath string `envconfig:"SQLITE_PATH" default:"data/chartlog.db"`

	// OwnerID scopes every row; the service is single-user but the store
	// keeps the owner column so the row shape matches the hosted backend.
	OwnerID string `envconfig:"OWNER_ID" default:"default"`

	// Event bus buffer for change notifications.
	EventBufferSize int `envconfig:"EVENT_BUFFER_SIZE" default:"256"`

	// Health checking
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
}

// ResolveDefaults validates BuildTarget and derives DBDriver when set to
// "auto" or empty.
func (c *Config) ResolveDefaults() error {
	var defaultDB string
	switch c.BuildTarget {
	case "local":
		defaultDB = "sqlite"
	case "cloud":
		defaultDB = "postgres"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
	}

	allowedDB := map[string]bool{"postgres": true, "sqlite": true, "memory": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.DBDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("CHARTLOG_POSTGRES_DSN is required for the postgres driver")
	}
	return nil
}

// New creates a Config by parsing environment variables prefixed with
// CHARTLOG_, e.g. CHARTLOG_HTTP_PORT, CHARTLOG_POSTGRES_DSN.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("CHARTLOG", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("owner", cfg.OwnerID).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing.
func NewForTesting() *Config {
	return &Config{
		BuildTarget:               "local",
		DBDriver:                  "memory",
		Environment:               EnvTesting,
		HTTPPort:                  8080,
		OwnerID:                   "test-owner",
		EventBufferSize:           16,
		HealthIntervalSeconds:     1,
		HealthProbeTimeoutSeconds: 1,
	}
}

// IsTesting returns true if the environment is set to testing.
func (c *Config) IsTesting() bool { return c.Environment == EnvTesting }

// IsProduction returns true if the environment is set to production.
func (c *Config) IsProduction() bool { return c.Environment == EnvProduction }

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string { return fmt.Sprintf(":%d", c.HTTPPort) }

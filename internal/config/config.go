// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Development defaults that must not reach production.
const (
	defaultDBPassword    = "changeme"
	defaultJWTSecret     = "dev-secret-change-me"
	defaultAdminPassword = "changeme123"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host     string `env:"APP_HOST" env-default:"0.0.0.0" env-description:"listen host"`
	Port     string `env:"APP_PORT" env-default:"3001" env-description:"listen port"`
	Env      string `env:"APP_ENV" env-default:"development" env-description:"development, production or testing"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`

	// PostgreSQL connection
	DBHost     string `env:"POSTGRES_HOST" env-default:"localhost" env-description:"PostgreSQL host"`
	DBPort     string `env:"POSTGRES_PORT" env-default:"5432" env-description:"PostgreSQL port"`
	DBUser     string `env:"POSTGRES_USER" env-default:"morphecms" env-description:"PostgreSQL user"`
	DBPassword string `env:"POSTGRES_PASSWORD" env-default:"changeme" env-description:"PostgreSQL password"`
	DBName     string `env:"POSTGRES_DB" env-default:"morphecms" env-description:"PostgreSQL database"`

	// Valkey (Redis-compatible cache). An empty host disables the public
	// response cache.
	ValkeyHost     string `env:"VALKEY_HOST" env-default:"localhost" env-description:"Valkey host, empty disables caching"`
	ValkeyPort     string `env:"VALKEY_PORT" env-default:"6379" env-description:"Valkey port"`
	ValkeyPassword string `env:"VALKEY_PASSWORD" env-description:"Valkey password"`

	// Tokens
	JWTSecret string        `env:"JWT_SECRET" env-default:"dev-secret-change-me" env-description:"HMAC secret for API tokens"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" env-default:"168h" env-description:"token lifetime"`
	JWTIssuer string        `env:"JWT_ISSUER" env-default:"morphecms" env-description:"token issuer"`

	// HTTP behavior
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000" env-description:"comma-separated browser origins"`
	PublicCacheTTL     time.Duration `env:"PUBLIC_CACHE_TTL" env-default:"60s" env-description:"public response cache lifetime, 0 disables"`
	LoginRateLimit     int           `env:"LOGIN_RATE_LIMIT" env-default:"10" env-description:"login attempts per IP per minute"`

	// Seed
	AdminEmail    string `env:"SEED_ADMIN_EMAIL" env-default:"admin@morphe.local" env-description:"email of the seeded admin"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD" env-default:"changeme123" env-description:"password of the seeded admin"`
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// keep their development defaults in production mode.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if cfg.Env == "" {
		cfg.Env = "development"
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "" || cfg.DBPassword == defaultDBPassword {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		if cfg.AdminPassword == defaultAdminPassword {
			return nil, fmt.Errorf("SEED_ADMIN_PASSWORD must be set in production")
		}
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	if cfg.JWTExpiry <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRY must be positive")
	}

	return cfg, nil
}

// Usage describes every environment variable Load reads.
func Usage() string {
	text, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return err.Error()
	}
	return text
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ValkeyAddr returns the Valkey address, or "" when caching is disabled.
func (c *Config) ValkeyAddr() string {
	if c.ValkeyHost == "" || c.PublicCacheTTL <= 0 {
		return ""
	}
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

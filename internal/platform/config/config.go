// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Catalog) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/bookshelf/pkg/query"
)

// # Configuration Schema

// Config holds all runtime configuration for the Bookshelf API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL) backing authenticated favorites.
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath overrides the embedded SQL migrations with a directory on disk.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Key-Value Store (Redis) backing guest favorites. Outside development it
	// is mandatory; in development an in-process store is used when unset.
	RedisURL string `env:"REDIS_URL"`

	// Bearer tokens are minted by the external identity provider; we only verify.
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH,required,notEmpty"`
	JWTIssuer     string `env:"JWT_ISSUER" envDefault:"bookshelf.app"`

	// Remote catalog (volume search service)
	Catalog CatalogConfig `envPrefix:"CATALOG_"`

	// Cross-Origin Resource Sharing, comma separated origin suffixes.
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`
}

// CatalogConfig tunes the outbound catalog client.
type CatalogConfig struct {
	BaseURL    string        `env:"BASE_URL"    envDefault:"https://www.googleapis.com/books/v1/volumes"`
	APIKey     string        `env:"API_KEY"`
	Timeout    time.Duration `env:"TIMEOUT"     envDefault:"10s"`
	RPS        float64       `env:"RPS"         envDefault:"5"`
	MaxRetries int           `env:"MAX_RETRIES" envDefault:"1"`
	CacheSize  int           `env:"CACHE_SIZE"  envDefault:"256"`
	CacheTTL   time.Duration `env:"CACHE_TTL"   envDefault:"5m"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.RedisURL == "" && !cfg.IsDevelopment() {
		return nil, fmt.Errorf("config: REDIS_URL is required in %s", cfg.Environment)
	}

	if cfg.Catalog.RPS <= 0 {
		return nil, fmt.Errorf("config: CATALOG_RPS must be positive, got %v", cfg.Catalog.RPS)
	}

	if cfg.Catalog.MaxRetries < 0 {
		return nil, fmt.Errorf("config: CATALOG_MAX_RETRIES must not be negative, got %d", cfg.Catalog.MaxRetries)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Origins returns the allowed CORS origin suffixes.
func (c *Config) Origins() []string {
	return query.StringSlice(c.AllowedOrigins)
}

package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// TLS/mTLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Redis (optional) - shared rate limiter storage across replicas
	RedisURL string // e.g. "redis://localhost:6379"

	// Search provider
	SerpAPIKey       string // empty disables search, classification degrades
	SearchTimeout    time.Duration
	SearchMaxResults int

	// Cache
	CacheTTL     time.Duration // how long classification records stay fresh
	CacheTimeout time.Duration // per-operation budget for cache reads/writes

	// Background jobs
	PruneInterval time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/uuidy?sslmode=disable"),
		TLSEnabled:  getEnv("TLS_ENABLED", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:   getEnv("TLS_CA_FILE", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		SerpAPIKey:       getEnv("SERPAPI_KEY", ""),
		SearchTimeout:    getEnvDuration("SEARCH_TIMEOUT", 10*time.Second),
		SearchMaxResults: getEnvInt("SEARCH_MAX_RESULTS", 5),

		CacheTTL:     getEnvDuration("CACHE_TTL", 30*24*time.Hour),
		CacheTimeout: getEnvDuration("CACHE_TIMEOUT", 2*time.Second),

		PruneInterval: getEnvDuration("PRUNE_INTERVAL", 6*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}

// SearchEnabled returns true if a search provider credential is configured.
func (c *Config) SearchEnabled() bool {
	return c.SerpAPIKey != ""
}

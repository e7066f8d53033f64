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

	// Redis-backed rate limiter storage (in-memory when empty)
	RedisURL string

	// OIDC bearer auth for the API (disabled when issuer is empty)
	OIDCIssuer   string
	OIDCClientID string

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Candidate generator (LLM)
	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	// OAuth2 client credentials for gateway-fronted LLM deployments.
	// When the token URL is set, it takes precedence over the static key.
	LLMOAuthTokenURL     string
	LLMOAuthClientID     string
	LLMOAuthClientSecret string

	// Scoring policy file (quotas, weights, brand tokens)
	PolicyFile string

	// Corpus index refresh
	CorpusRefreshInterval time.Duration

	// Scored-keyword cache
	CacheSize int
	CacheTTL  time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/kwforge?sslmode=disable"),
		RedisURL:    getEnv("REDIS_URL", ""),

		OIDCIssuer:   getEnv("OIDC_ISSUER", ""),
		OIDCClientID: getEnv("OIDC_CLIENT_ID", ""),

		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		LLMAPIKey:            getEnv("LLM_API_KEY", ""),
		LLMBaseURL:           getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMModel:             getEnv("LLM_MODEL", "gpt-4-turbo-preview"),
		LLMOAuthTokenURL:     getEnv("LLM_OAUTH_TOKEN_URL", ""),
		LLMOAuthClientID:     getEnv("LLM_OAUTH_CLIENT_ID", ""),
		LLMOAuthClientSecret: getEnv("LLM_OAUTH_CLIENT_SECRET", ""),

		PolicyFile: getEnv("POLICY_FILE", "policy.yaml"),

		CorpusRefreshInterval: getDuration("CORPUS_REFRESH_INTERVAL", 15*time.Minute),
		CacheSize:             getInt("CACHE_SIZE", 4096),
		CacheTTL:              getDuration("CACHE_TTL", 30*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// AuthEnabled reports whether OIDC bearer auth is configured.
func (c *Config) AuthEnabled() bool {
	return c.OIDCIssuer != ""
}

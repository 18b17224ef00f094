package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Documentation backend connection
	BackendURL    string
	BackendAPIKey string
	BackendRPS    float64

	// Auth
	APIKey string

	// Cache
	CachePath string
	CacheTTL  time.Duration

	// Token budgets and paging
	DefaultMaxTokens int
	MaxTokensCeiling int
	DefaultPageSize  int
	MaxPageSize      int

	// Per-site extraction rules
	SitesFile string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		BackendURL:    envOr("BACKEND_URL", "https://docs.example.com"),
		BackendAPIKey: os.Getenv("BACKEND_API_KEY"),
		BackendRPS:    envFloat("BACKEND_RPS", 2.0),

		APIKey: os.Getenv("DOCRELAY_API_KEY"),

		CachePath: envOr("CACHE_PATH", "docrelay-cache.db"),
		CacheTTL:  envDuration("CACHE_TTL", 1*time.Hour),

		DefaultMaxTokens: envInt("DEFAULT_MAX_TOKENS", 10000),
		MaxTokensCeiling: envInt("MAX_TOKENS_CEILING", 50000),
		DefaultPageSize:  envInt("DEFAULT_PAGE_SIZE", 10),
		MaxPageSize:      envInt("MAX_PAGE_SIZE", 50),

		SitesFile: os.Getenv("SITES_FILE"),
	}

	if cfg.BackendRPS <= 0 {
		cfg.BackendRPS = 2.0
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 1 * time.Hour
	}
	if cfg.DefaultMaxTokens <= 0 {
		cfg.DefaultMaxTokens = 10000
	}
	if cfg.MaxTokensCeiling < cfg.DefaultMaxTokens {
		cfg.MaxTokensCeiling = cfg.DefaultMaxTokens
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 10
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		cfg.MaxPageSize = cfg.DefaultPageSize
	}

	return cfg
}

func (c Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("DOCRELAY_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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

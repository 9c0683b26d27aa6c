package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Port          string
	Environment   string
	PublicBaseURL string

	// Catalog source. When DatabaseURL is empty the catalog is read from
	// CatalogPath instead.
	DatabaseURL string
	CatalogPath string

	// Share links
	ShareSecret          string
	ShareExpirationHours int

	// Result cache, disabled when RedisAddress is empty
	RedisAddress   string
	RedisPassword  string
	RedisDB        int
	ResultCacheTTL time.Duration

	// Resolver
	ResolverWorkers int
	MaxResultRows   int
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		PublicBaseURL:        getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		CatalogPath:          getEnv("CATALOG_PATH", "data/catalog.json"),
		ShareSecret:          getEnv("SHARE_SECRET", ""),
		ShareExpirationHours: getEnvInt("SHARE_EXPIRATION_HOURS", 720),
		RedisAddress:         getEnv("REDIS_ADDRESS", ""),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              getEnvInt("REDIS_DB", 0),
		ResultCacheTTL:       time.Duration(getEnvInt("RESULT_CACHE_TTL_SECONDS", 300)) * time.Second,
		ResolverWorkers:      getEnvInt("RESOLVER_WORKERS", 0),
		MaxResultRows:        getEnvInt("MAX_RESULT_ROWS", 5000),
	}

	if cfg.ShareSecret == "" {
		return nil, fmt.Errorf("SHARE_SECRET environment variable is required")
	}
	if cfg.MaxResultRows < 0 {
		return nil, fmt.Errorf("MAX_RESULT_ROWS must not be negative")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

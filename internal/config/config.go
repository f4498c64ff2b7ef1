package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ShardConfigPath string
	Port            string
	LogLevel        string

	// Per-shard connection pools
	PoolMaxConns   int
	DBQueryTimeout time.Duration

	// Circuit breaker around shard queries
	BreakerMaxFailures  int
	BreakerResetTimeout time.Duration
}

func Load() Config {
	return Config{
		ShardConfigPath:     getEnvRequired("SHARD_CONFIG_PATH"),
		Port:                getEnv("PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		PoolMaxConns:        getEnvInt("POOL_MAX_CONNS", 4),
		DBQueryTimeout:      getEnvDuration("DB_QUERY_TIMEOUT", 5*time.Second),
		BreakerMaxFailures:  getEnvInt("BREAKER_MAX_FAILURES", 5),
		BreakerResetTimeout: getEnvDuration("BREAKER_RESET_TIMEOUT", 10*time.Second),
	}
}

func getEnvRequired(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic("required environment variable " + key + " is not set")
	}
	return v
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "error", err)
			return fallback
		}
		return n
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "error", err)
			return fallback
		}
		return d
	}
	return fallback
}

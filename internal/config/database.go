package config

import (
	"fmt"
	"strconv"
	"time"

	"tattoo-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig reads connection-pool settings from environment
// variables and returns a DBConfig.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	var firstErr error

	envInt := func(key, fallback string) int {
		v, err := strconv.Atoi(getEnv(key, fallback))
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("invalid %s: %w", key, err)
		}
		return v
	}
	envDuration := func(key, fallback string) time.Duration {
		v, err := time.ParseDuration(getEnv(key, fallback))
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("invalid %s: %w", key, err)
		}
		return v
	}

	cfg := &database.DBConfig{
		Host:              getEnv("DB_HOST", "localhost"),
		Port:              envInt("DB_PORT", "5432"),
		Username:          getEnv("DB_USER", "tattoo"),
		Password:          getEnv("DB_PASSWORD", "secret"),
		DBName:            getEnv("DB_NAME", "tattoo_dev"),
		MaxConns:          int32(envInt("DB_MAX_CONNECTIONS", "25")),
		MinConns:          int32(envInt("DB_MIN_CONNECTIONS", "5")),
		MaxConnLifetime:   envDuration("DB_MAX_CONN_LIFETIME", "5m"),
		MaxConnIdleTime:   envDuration("DB_MAX_CONN_IDLE_TIME", "1m"),
		HealthCheckPeriod: envDuration("DB_HEALTH_CHECK_PERIOD", "1m"),
		MaxRetries:        envInt("DB_MAX_RETRIES", "5"),
		RetryDelay:        envDuration("DB_RETRY_DELAY", "1s"),
		ConnectTimeout:    envDuration("DB_CONNECT_TIMEOUT", "10s"),
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return cfg, nil
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Environment  string
	LogLevel     slog.Level
	LogFile      string
	RedisURL     string // empty disables event broadcasting
	ContentFile  string // empty uses the embedded tables
	OutboxPeriod int
	Seed         uint64 // 0 picks a time-based seed
}

func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:     getEnv("LOG_FILE", "paperwork.log"),
		RedisURL:    getEnv("REDIS_URL", ""),
		ContentFile: getEnv("CONTENT_FILE", ""),
	}

	period, err := strconv.Atoi(getEnv("OUTBOX_PERIOD", "10"))
	if err != nil || period <= 0 {
		return nil, fmt.Errorf("OUTBOX_PERIOD must be a positive integer, got %q", os.Getenv("OUTBOX_PERIOD"))
	}
	cfg.OutboxPeriod = period

	seed, err := strconv.ParseUint(getEnv("SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("SEED must be a non-negative integer: %w", err)
	}
	cfg.Seed = seed

	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

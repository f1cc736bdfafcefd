package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port                 string
	DatabaseURL          string
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
	RateLimitPerMinute   int
	RateLimitBurst       int
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	return Config{
		Port:                 port,
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		SessionTTL:           readDuration("SESSION_TTL", 7*24*time.Hour),
		SessionSweepInterval: readDuration("SESSION_SWEEP_INTERVAL", time.Hour),
		RateLimitPerMinute:   readInt("RATE_LIMIT_PER_MIN", 120),
		RateLimitBurst:       readInt("RATE_LIMIT_BURST", 30),
	}
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}

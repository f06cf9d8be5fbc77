package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTP struct {
		Port string
	}

	DB struct {
		DSN string
	}

	Redis struct {
		URL string
	}

	JWT struct {
		Secret   string
		Duration time.Duration
	}

	Matching struct {
		// MatchTTL is how long a matching stays open before the sweep
		// completes it. Queue entries share the same TTL.
		MatchTTL      time.Duration
		QueueTTL      time.Duration
		SweepInterval time.Duration
	}

	Log struct {
		Level  string
		Format string
		Source bool
	}
}

func New() *Config {
	cfg := &Config{}

	cfg.HTTP.Port = getEnvDefault("PORT", "8080")

	cfg.DB.DSN = os.Getenv("DATABASE_URL")
	cfg.Redis.URL = getEnvDefault("REDIS_URL", "redis://localhost:6379/0")

	cfg.JWT.Secret = getEnvDefault("JWT_SECRET", "dev-secret")
	cfg.JWT.Duration = getEnvDuration("JWT_DURATION", 24*time.Hour)

	cfg.Matching.MatchTTL = getEnvDuration("MATCH_TTL", 72*time.Hour)
	cfg.Matching.QueueTTL = getEnvDuration("MATCH_QUEUE_TTL", 72*time.Hour)
	cfg.Matching.SweepInterval = getEnvDuration("MATCH_SWEEP_INTERVAL", 10*time.Minute)

	cfg.Log.Level = getEnvDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", "text")
	cfg.Log.Source = isTruthy(os.Getenv("LOG_SOURCE"))

	return cfg
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// plain number means seconds
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}

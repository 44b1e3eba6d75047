package config

import (
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     slog.Level

	// RateLimit uses the ulule limiter format, e.g. "120-M" for 120 requests a minute.
	RateLimit          string
	CORSAllowedOrigins []string

	ResponseCacheSize int
	ResponseCacheTTL  time.Duration

	WorkerQueueSize int
	FindingsTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RESPONSE_CACHE_SIZE", 256)
	viper.SetDefault("RESPONSE_CACHE_TTL", "30s")
	viper.SetDefault("WORKER_QUEUE_SIZE", 32)
	viper.SetDefault("FINDINGS_TIMEOUT", "5s")

	// Environment variables override the defaults and any .env values.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	if err := cfg.LogLevel.UnmarshalText([]byte(viper.GetString("LOG_LEVEL"))); err != nil {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", viper.GetString("LOG_LEVEL"))
		cfg.LogLevel = slog.LevelInfo
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	if cfg.RateLimit == "" {
		cfg.RateLimit = "120-M"
		log.Printf("Warning: RATE_LIMIT not set. Defaulting to %s.\n", cfg.RateLimit)
	}

	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.ResponseCacheSize = viper.GetInt("RESPONSE_CACHE_SIZE")
	if cfg.ResponseCacheSize < 0 {
		log.Printf("Warning: RESPONSE_CACHE_SIZE is negative (%d). Disabling the response cache.\n", cfg.ResponseCacheSize)
		cfg.ResponseCacheSize = 0
	}
	cfg.ResponseCacheTTL = duration("RESPONSE_CACHE_TTL", 30*time.Second)

	cfg.WorkerQueueSize = viper.GetInt("WORKER_QUEUE_SIZE")
	if cfg.WorkerQueueSize <= 0 {
		cfg.WorkerQueueSize = 32
		log.Printf("Warning: WORKER_QUEUE_SIZE must be positive. Defaulting to %d.\n", cfg.WorkerQueueSize)
	}
	cfg.FindingsTimeout = duration("FINDINGS_TIMEOUT", 5*time.Second)

	return cfg, nil
}

// duration parses a Go duration setting such as "30s", falling back on invalid input.
func duration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

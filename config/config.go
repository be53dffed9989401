// Package config loads process configuration from the environment into an
// explicit object passed to the services at construction time.
package config

import (
	"errors"
	"os"
	"time"

	"scholarspace-backend/storage"
)

// Config holds everything the server needs from its environment
type Config struct {
	DatabaseURL string        // Required: Postgres connection string
	JWTSecret   string        // Required: HS256 token signing key
	TokenTTL    time.Duration // Token lifetime (default: 1h)
	Port        string        // HTTP listen port (default: 8080)
	Storage     storage.Config
}

// Load reads configuration from environment variables
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenTTL:    getEnvDurationOrDefault("TOKEN_TTL", time.Hour),
		Port:        getEnvOrDefault("PORT", "8080"),
		Storage: storage.Config{
			Type:         storage.Type(getEnvOrDefault("STORAGE_TYPE", "local")),
			LocalPath:    getEnvOrDefault("STORAGE_LOCAL_PATH", "./storage/documents"),
			S3Bucket:     os.Getenv("AWS_S3_BUCKET"),
			S3Region:     getEnvOrDefault("AWS_REGION", "us-east-1"),
			AWSAccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}

	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return cfg, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDurationOrDefault(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

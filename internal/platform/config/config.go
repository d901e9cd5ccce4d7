package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr              string
	DatabaseURL       string
	JWTSecret         string
	Environment       string
	TokenTTL          time.Duration
	SeedOwnerPassword string
	RunMigrations     bool
	RunSeed           bool
	MaxBodyBytes      int64

	// RecomputeInterval enables the background totals refresh when
	// positive. Zero leaves recomputation to the batch endpoint.
	RecomputeInterval time.Duration
}

func Load() Config {
	return Config{
		Addr:              getEnv("APP_ADDR", ":8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		Environment:       getEnv("APP_ENV", "development"),
		TokenTTL:          getEnvDuration("TOKEN_TTL", 12*time.Hour),
		SeedOwnerPassword: getEnv("SEED_OWNER_PASSWORD", ""),
		RunMigrations:     getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:           getEnvBool("RUN_SEED", true),
		MaxBodyBytes:      int64(getEnvInt("MAX_BODY_BYTES", 10485760)),
		RecomputeInterval: getEnvDuration("RECOMPUTE_INTERVAL", 0),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedOwnerPassword) == "" {
			return fmt.Errorf("SEED_OWNER_PASSWORD must be set or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.RecomputeInterval < 0 {
		return fmt.Errorf("RECOMPUTE_INTERVAL must not be negative")
	}
	return nil
}

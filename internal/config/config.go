// Package config loads the service configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultPort      = "8080"
	defaultDBName    = "students"
	defaultRateLimit = 100
)

type Config struct {
	Port  string
	DBURL string
	// DBName is prefixed with "dev_" in dev mode.
	DBName string
	// JWTSecret signs admin tokens. A random secret is used when empty.
	JWTSecret     string
	AdminUsername string
	AdminPassword string
	// RateLimit is the number of requests allowed per IP per minute.
	RateLimit int
	DevMode   bool
	InMemory  bool
}

// Load reads the .env files (if any) into the environment and builds a Config
// from it. Values already set in the environment take precedence over the
// files.
func Load(devMode, inMemory bool, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, file := range envFiles {
		err := godotenv.Load(file)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("godotenv.Load error: %w", err)
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", defaultPort),
		DBURL:         os.Getenv("DB_URL"),
		DBName:        getEnv("DB_NAME", defaultDBName),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		RateLimit:     defaultRateLimit,
		DevMode:       devMode,
		InMemory:      inMemory,
	}

	if rateLimit := os.Getenv("RATE_LIMIT"); rateLimit != "" {
		n, err := strconv.Atoi(rateLimit)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid RATE_LIMIT %q", rateLimit)
		}
		cfg.RateLimit = n
	}

	if devMode {
		cfg.DBName = "dev_" + cfg.DBName
	}

	if !inMemory && cfg.DBURL == "" {
		return nil, errors.New("DB_URL environment variable is not set")
	}

	if (cfg.AdminUsername == "") != (cfg.AdminPassword == "") {
		return nil, errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

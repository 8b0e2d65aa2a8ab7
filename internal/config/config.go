package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Database. Driver is "postgres" or "sqlite"; SQLitePath is only
	// used by the sqlite driver.
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Auth gate. When disabled every request is treated as a guest.
	AuthEnabled  bool
	AuthUsername string
	AuthPassword string
	JWTSecret    string
	TokenTTL     time.Duration
}

func Load() *Config {
	return &Config{
		Port:       getenv("PORT", "8080"),
		DBDriver:   getenv("DB_DRIVER", "sqlite"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", "postgres"),
		DBName:     getenv("DB_NAME", "navdeck"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),
		SQLitePath: getenv("SQLITE_PATH", "navdeck.db"),

		AuthEnabled:  getenvBool("AUTH_ENABLED", false),
		AuthUsername: getenv("AUTH_USERNAME", "admin"),
		AuthPassword: getenv("AUTH_PASSWORD", ""),
		JWTSecret:    getenv("JWT_SECRET", "supersecret_change_me"),
		TokenTTL:     getenvHours("TOKEN_TTL_HOURS", 24),
	}
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvHours(key string, fallback int) time.Duration {
	v := os.Getenv(key)
	if v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Hour
		}
	}
	return time.Duration(fallback) * time.Hour
}

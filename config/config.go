// Package config loads and validates application configuration from
// environment variables. Problems are collected and reported together
// so a misconfigured deployment fails fast with one complete message.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PoolConfig holds settings for the PostgreSQL connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds authentication-related settings.
type AuthConfig struct {
	// BcryptCost is the work factor used when hashing new passwords.
	BcryptCost int
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// FeedConfig holds message feed pagination settings.
type FeedConfig struct {
	// PageSize is the default number of messages per page.
	PageSize int
	// MaxPageSize is the upper bound a client may request via page_size.
	MaxPageSize int
}

// AppConfig is the top-level configuration for the application.
type AppConfig struct {
	DB     *PoolConfig
	Auth   *AuthConfig
	Server *ServerConfig
	Feed   *FeedConfig
}

func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// clampPoolSize keeps the pool size within sane bounds without failing
// the whole configuration load.
func clampPoolSize(size int) int {
	if size < 2 {
		return 2
	}
	if size > 100 {
		return 100
	}
	return size
}

// LoadConfig builds an AppConfig from the environment. It returns a
// single aggregated error listing every problem it found.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	dbUser := getRequiredEnv("DB_USER", &errs)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errs)
	dbName := getRequiredEnv("DB_NAME", &errs)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errs)
	poolSize := clampPoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errs))

	bcryptCost := getOptionalEnvInt("BCRYPT_COST", bcrypt.DefaultCost, &errs)
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Sprintf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, bcryptCost))
	}

	pageSize := getOptionalEnvInt("FEED_PAGE_SIZE", 50, &errs)
	maxPageSize := getOptionalEnvInt("FEED_MAX_PAGE_SIZE", 100, &errs)
	if pageSize < 1 {
		errs = append(errs, fmt.Sprintf("FEED_PAGE_SIZE must be positive, got %d", pageSize))
	}
	if maxPageSize < pageSize {
		errs = append(errs, fmt.Sprintf("FEED_MAX_PAGE_SIZE (%d) must not be smaller than FEED_PAGE_SIZE (%d)", maxPageSize, pageSize))
	}

	serverPort := getOptionalEnv("PORT", "8080")

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		DB: &PoolConfig{
			Host:     dbHost,
			Port:     dbPort,
			User:     dbUser,
			Password: dbPassword,
			DBName:   dbName,
			MaxSize:  poolSize,
		},
		Auth: &AuthConfig{
			BcryptCost: bcryptCost,
		},
		Server: &ServerConfig{
			Port: serverPort,
		},
		Feed: &FeedConfig{
			PageSize:    pageSize,
			MaxPageSize: maxPageSize,
		},
	}, nil
}

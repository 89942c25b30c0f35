package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all environment configuration
type Config struct {
	Environment string
	Port        string

	// Database
	DatabaseHost     string
	DatabasePort     string
	PostgresUser     string
	PostgresPassword string
	DatabaseName     string
	DatabaseSSLMode  string

	// Authentication
	JWTSecret string

	// Admin API
	CorsOrigins []string

	// Change notifications, publishing is disabled when KafkaBroker is empty
	KafkaBroker string
	KafkaTopic  string
}

var (
	appConfig *Config
	onceEnv   sync.Once
)

func loadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
		Port:        getEnvWithDefault("PORT", "8000"),

		DatabaseHost:     getEnvWithDefault("DATABASE_HOST", "localhost"),
		DatabasePort:     getEnvWithDefault("DATABASE_PORT", "5432"),
		PostgresUser:     getEnvWithDefault("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnvWithDefault("POSTGRES_PASSWORD", "postgres"),
		DatabaseName:     getEnvWithDefault("DATABASE_NAME", "eventmi"),
		DatabaseSSLMode:  getEnvWithDefault("DATABASE_SSLMODE", "disable"),

		JWTSecret: getRequiredEnv("JWT_SECRET", "dummyjwt"),

		CorsOrigins: splitList(getEnvWithDefault("CORS_ORIGINS", "http://localhost:3000")),

		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		KafkaTopic:  getEnvWithDefault("KAFKA_TOPIC", "eventmi.event-changes"),
	}
}

func Env() *Config {
	onceEnv.Do(func() {
		appConfig = loadConfig()
	})
	return appConfig
}

// DSN builds the postgres connection string for gorm and lib/pq.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DatabaseHost,
		c.DatabasePort,
		c.PostgresUser,
		c.PostgresPassword,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
}

// getRequiredEnv falls back to defaultValue outside of production only.
func getRequiredEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	if IsProduction() {
		panic(fmt.Sprintf("Required environment variable %s is not set", key))
	}
	return defaultValue
}

func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// IsProduction returns true if running in production
func IsProduction() bool {
	return getEnvWithDefault("ENVIRONMENT", "development") == "production"
}

// IsDevelopment returns true if running in development
func IsDevelopment() bool {
	return !IsProduction()
}

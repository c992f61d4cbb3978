package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	CORS        CORSConfig
	Calculation CalculationConfig
	Reports     ReportConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// CalculationConfig bounds calculation work per request.
type CalculationConfig struct {
	// MaxBatchSize is the largest transaction batch accepted; larger
	// batches are rejected at the boundary. Zero disables the bound.
	MaxBatchSize int
}

// ReportConfig holds saved-report storage configuration.
type ReportConfig struct {
	// RetentionDays is how long saved reports are kept before the daily
	// purge removes them. Zero or negative disables the purge.
	RetentionDays int
	// EncryptionKey is the base64 fernet key used to encrypt stored
	// realized gains. When empty an ephemeral key is generated at
	// startup, so saved payloads do not survive a restart.
	EncryptionKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8000"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/cryptotax.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Calculation: CalculationConfig{
			MaxBatchSize: getEnvInt("MAX_BATCH_SIZE", 500),
		},
		Reports: ReportConfig{
			RetentionDays: getEnvInt("REPORT_RETENTION_DAYS", 30),
			EncryptionKey: getEnv("REPORT_ENCRYPTION_KEY", ""),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"waterdash/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data     DataConfig
	Server   ServerConfig
	LogLevel string
}

// DataConfig describes where the workbook lives and which slice of it holds
// the city metrics.
type DataConfig struct {
	// File is the workbook path. The file is allowed to be missing; the
	// dashboard renders an empty state until it appears.
	File  string
	Sheet string
	// Columns is an Excel-style column range such as "F:N". Only cells in
	// this range are ever read.
	Columns string
	// HeaderRow is the zero-based row index holding the column names.
	// Rows above it are title/banner rows and are ignored.
	HeaderRow int
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data:     loadDataConfig(),
		Server:   loadServerConfig(),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDataConfig() DataConfig {
	return DataConfig{
		File:      getEnvOrDefault("DATA_FILE", "Final.Project.Data.xlsx"),
		Sheet:     getEnvOrDefault("DATA_SHEET", "Sheet1"),
		Columns:   getEnvOrDefault("DATA_COLUMNS", "F:N"),
		HeaderRow: getEnvIntOrDefault("DATA_HEADER_ROW", 2),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}

func validateConfig(config *Config) error {
	if config.Data.File == "" {
		return errors.ConfigInvalid("data file path is required")
	}
	if config.Data.Sheet == "" {
		return errors.ConfigInvalid("data sheet name is required")
	}
	if !strings.Contains(config.Data.Columns, ":") {
		return errors.ConfigInvalid("data column range must look like F:N")
	}
	if config.Data.HeaderRow < 0 {
		return errors.ConfigInvalid("header row index cannot be negative")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

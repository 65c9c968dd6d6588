package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

var supportedProviders = map[string]bool{
	"gemini": true,
	"groq":   true,
}

// app config: server, providers, persistence, export job
type Config struct {
	Port string

	// RealtimeProvider serves per-turn calls (questions, per-answer
	// evaluation, hints). BatchProvider serves the end-of-session report.
	RealtimeProvider string
	BatchProvider    string
	ReportTimeout    time.Duration

	// DBDriver is sqlite or postgres. An empty DSN with sqlite uses the
	// default local file.
	DBDriver string
	DBDsn    string

	ExportSchedule string
	ExportDir      string
	ExportEnabled  bool
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:             getEnvOrDefault("PORT", "8086"),
		RealtimeProvider: getEnvOrDefault("AI_REALTIME_PROVIDER", "groq"),
		BatchProvider:    getEnvOrDefault("AI_BATCH_PROVIDER", "gemini"),
		ReportTimeout:    getEnvDuration("REPORT_TIMEOUT", 25*time.Second),
		DBDriver:         getEnvOrDefault("DB_DRIVER", "sqlite"),
		DBDsn:            getEnvOrDefault("DB_DSN", "interview.db"),
		ExportSchedule:   getEnvOrDefault("EXPORT_SCHEDULE", "0 2 * * *"),
		ExportDir:        getEnvOrDefault("EXPORT_DIR", "./exports"),
		ExportEnabled:    getEnvBool("EXPORT_ENABLED", false),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if !supportedProviders[config.RealtimeProvider] {
		return errors.New("unsupported realtime provider: " + config.RealtimeProvider + ". Currently supported: gemini, groq")
	}
	if !supportedProviders[config.BatchProvider] {
		return errors.New("unsupported batch provider: " + config.BatchProvider + ". Currently supported: gemini, groq")
	}
	if config.DBDriver != "sqlite" && config.DBDriver != "postgres" {
		return errors.New("unsupported database driver: " + config.DBDriver + ". Currently supported: sqlite, postgres")
	}
	// Provider credential validation is handled by each provider's NewConfig()
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

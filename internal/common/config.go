package common

import (
	"os"
	"strconv"
	"time"

	"github.com/bidworks/rfp-analyzer/internal/estimator"
)

// Config holds all application configuration
type Config struct {
	Rules    RulesConfig
	History  HistoryConfig
	Estimate EstimateConfig
	LogLevel string
}

// RulesConfig points at an optional classifier rules override file.
type RulesConfig struct {
	Path string
}

// HistoryConfig holds run-history persistence settings.
type HistoryConfig struct {
	DBPath        string
	HealthTimeout time.Duration
}

// EstimateConfig holds cost-engine tuning.
type EstimateConfig struct {
	MarginTarget float64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Rules: RulesConfig{
			Path: getEnv("RFP_RULES_PATH", ""),
		},
		History: HistoryConfig{
			DBPath:        getEnv("RFP_HISTORY_DB", "rfp-history.db"),
			HealthTimeout: getEnvAsDuration("RFP_HISTORY_HEALTH_TIMEOUT", 3*time.Second),
		},
		Estimate: EstimateConfig{
			MarginTarget: getEnvAsFloat64("RFP_MARGIN_TARGET", estimator.DefaultMarginTarget),
		},
		LogLevel: getEnv("RFP_LOG_LEVEL", "info"),
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Estimate.MarginTarget < 0 || c.Estimate.MarginTarget >= 1 {
		return NewAppError("CONFIG_ERROR", "RFP_MARGIN_TARGET must be in [0, 1)", ErrInvalidInput)
	}
	if c.History.DBPath == "" {
		return NewAppError("CONFIG_ERROR", "RFP_HISTORY_DB is required", ErrInvalidInput)
	}
	return nil
}

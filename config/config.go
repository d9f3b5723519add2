// Package config provides configuration management and environment variable handling for the application
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig holds all configuration for the service
type AppConfig struct {
	Server    ServerConfig    `json:"server"`
	Analytics AnalyticsConfig `json:"analytics"`
	Logging   LoggingConfig   `json:"logging"`
	Metrics   MetricsConfig   `json:"metrics"`
}

type ServerConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	IdleTimeout     time.Duration `json:"idle_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	AllowedOrigins  []string      `json:"allowed_origins"`
}

// AnalyticsConfig enumerates every generation and aggregation knob
// explicitly, so no pipeline call carries hidden defaults.
type AnalyticsConfig struct {
	Seed          int64 `json:"seed"`
	WindowDays    int   `json:"window_days"`
	OrderCount    int   `json:"order_count"`
	CustomerCount int   `json:"customer_count"`
	ProductCount  int   `json:"product_count"`
	InactiveCount int   `json:"inactive_count"`
	MonthCount    int   `json:"month_count"`
	BucketCount   int   `json:"bucket_count"`
	TopN          int   `json:"top_n"`
	HistogramBins int   `json:"histogram_bins"`
}

type LoggingConfig struct {
	File       string `json:"file"` // empty logs to stderr
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
	Compress   bool   `json:"compress"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// LoadConfig loads configuration from the environment, with an optional .env
// file for local development.
func LoadConfig() (*AppConfig, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &AppConfig{
		Server: ServerConfig{
			Host:            getEnvString("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			AllowedOrigins:  getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Analytics: AnalyticsConfig{
			Seed:          int64(getEnvInt("ANALYTICS_SEED", 42)),
			WindowDays:    getEnvInt("ANALYTICS_WINDOW_DAYS", 540),
			OrderCount:    getEnvInt("ANALYTICS_ORDER_COUNT", 50),
			CustomerCount: getEnvInt("ANALYTICS_CUSTOMER_COUNT", 100),
			ProductCount:  getEnvInt("ANALYTICS_PRODUCT_COUNT", 20),
			InactiveCount: getEnvInt("ANALYTICS_INACTIVE_COUNT", 50),
			MonthCount:    getEnvInt("ANALYTICS_MONTH_COUNT", 12),
			BucketCount:   getEnvInt("ANALYTICS_BUCKET_COUNT", 3),
			TopN:          getEnvInt("ANALYTICS_TOP_N", 5),
			HistogramBins: getEnvInt("ANALYTICS_HISTOGRAM_BINS", 12),
		},
		Logging: LoggingConfig{
			File:       getEnvString("LOG_FILE", ""),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnvString("METRICS_PATH", "/metrics"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot work with.
func (c *AppConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Analytics.WindowDays < 2 {
		return fmt.Errorf("analytics window must span at least 2 days, got %d", c.Analytics.WindowDays)
	}
	if c.Analytics.OrderCount < 1 {
		return fmt.Errorf("order count must be positive, got %d", c.Analytics.OrderCount)
	}
	if c.Analytics.BucketCount < 1 {
		return fmt.Errorf("bucket count must be positive, got %d", c.Analytics.BucketCount)
	}
	if c.Analytics.TopN < 1 {
		return fmt.Errorf("top-n default must be positive, got %d", c.Analytics.TopN)
	}
	if c.Analytics.HistogramBins < 1 {
		return fmt.Errorf("histogram bin count must be positive, got %d", c.Analytics.HistogramBins)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with '/', got %q", c.Metrics.Path)
	}
	return nil
}

// loadEnvFile reads KEY=VALUE pairs from .env without overriding variables
// already present in the environment.
func loadEnvFile() error {
	file, err := os.Open(".env")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

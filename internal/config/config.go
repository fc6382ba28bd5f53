package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Stage       string
	Log         LogConfig
	Background  BackgroundConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "text" or "json"
}

// BackgroundConfig holds background worker configuration
type BackgroundConfig struct {
	Label       string
	WorkerLimit int
	LoopName    string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8081")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("STAGE", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("BACKGROUND_LABEL", "background")
	v.SetDefault("BACKGROUND_WORKERS", 16)
	v.SetDefault("EVENT_LOOP_NAME", "main")

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Stage:       v.GetString("STAGE"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Background: BackgroundConfig{
			Label:       v.GetString("BACKGROUND_LABEL"),
			WorkerLimit: v.GetInt("BACKGROUND_WORKERS"),
			LoopName:    v.GetString("EVENT_LOOP_NAME"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for values the helpers cannot work with
func (c *Config) Validate() error {
	if c.Background.WorkerLimit < 0 {
		return fmt.Errorf("BACKGROUND_WORKERS must not be negative, got %d", c.Background.WorkerLimit)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

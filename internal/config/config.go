package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the coffee price bot.
type Config struct {
	// Telegram bot token
	TelegramAPIKey string `mapstructure:"telegram_api_key"`

	// Base URLs for the two Yahoo Finance endpoints (configurable for testing)
	ChartBaseURL string `mapstructure:"chart_base_url"`
	QuoteBaseURL string `mapstructure:"quote_base_url"`

	// Cascade symbol order; unit rates are looked up per symbol
	Symbols []string `mapstructure:"symbols"`

	// Subscriber persistence
	SubscribersFile string `mapstructure:"subscribers_file"`

	// Daily broadcast schedule (weekdays only)
	BroadcastHour     int    `mapstructure:"broadcast_hour"`
	BroadcastMinute   int    `mapstructure:"broadcast_minute"`
	BroadcastTimezone string `mapstructure:"broadcast_timezone"`

	LogLevel string `mapstructure:"log_level"`
}

// Load reads configuration from environment variables and optional config file.
// Environment variables take precedence over config file values.
//
// Expected environment variables:
//   - TELEGRAM_API_KEY (required)
//   - CHART_BASE_URL (optional, defaults to production)
//   - QUOTE_BASE_URL (optional, defaults to production)
//   - SUBSCRIBERS_FILE (optional, defaults to subscribers.json)
//   - BROADCAST_HOUR / BROADCAST_MINUTE / BROADCAST_TIMEZONE (optional)
//   - LOG_LEVEL (optional, defaults to info)
func Load() (*Config, error) {
	v := viper.New()

	// Set up environment variable support
	v.SetEnvPrefix("") // No prefix, use full names
	v.AutomaticEnv()

	// Defaults: Yahoo production endpoints, 20:00 Rome time (after the US
	// market close), local subscribers file.
	v.SetDefault("chart_base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("quote_base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("subscribers_file", "subscribers.json")
	v.SetDefault("broadcast_hour", 20)
	v.SetDefault("broadcast_minute", 0)
	v.SetDefault("broadcast_timezone", "Europe/Rome")
	v.SetDefault("log_level", "info")

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.coffeebot")

	// Read config file (ignore if not found)
	_ = v.ReadInConfig()

	// Bind environment variables
	v.BindEnv("telegram_api_key", "TELEGRAM_API_KEY")
	v.BindEnv("chart_base_url", "CHART_BASE_URL")
	v.BindEnv("quote_base_url", "QUOTE_BASE_URL")
	v.BindEnv("subscribers_file", "SUBSCRIBERS_FILE")
	v.BindEnv("broadcast_hour", "BROADCAST_HOUR")
	v.BindEnv("broadcast_minute", "BROADCAST_MINUTE")
	v.BindEnv("broadcast_timezone", "BROADCAST_TIMEZONE")
	v.BindEnv("log_level", "LOG_LEVEL")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	var missing []string
	if config.TelegramAPIKey == "" {
		missing = append(missing, "TELEGRAM_API_KEY")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return config, nil
}

package config

import (
	"os"
	"strings"
	"testing"
)

func TestLoad_Success(t *testing.T) {
	// Set up environment variables
	envVars := map[string]string{
		"TELEGRAM_API_KEY":   "test_telegram_token",
		"CHART_BASE_URL":     "https://chart.test.invalid",
		"QUOTE_BASE_URL":     "https://quote.test.invalid",
		"SUBSCRIBERS_FILE":   "/tmp/test_subscribers.json",
		"BROADCAST_TIMEZONE": "America/New_York",
		"LOG_LEVEL":          "debug",
	}

	// Set environment variables
	for key, value := range envVars {
		os.Setenv(key, value)
		defer os.Unsetenv(key)
	}

	// Load configuration
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	// Verify all fields are set correctly
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"TelegramAPIKey", cfg.TelegramAPIKey, "test_telegram_token"},
		{"ChartBaseURL", cfg.ChartBaseURL, "https://chart.test.invalid"},
		{"QuoteBaseURL", cfg.QuoteBaseURL, "https://quote.test.invalid"},
		{"SubscribersFile", cfg.SubscribersFile, "/tmp/test_subscribers.json"},
		{"BroadcastTimezone", cfg.BroadcastTimezone, "America/New_York"},
		{"LogLevel", cfg.LogLevel, "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	os.Setenv("TELEGRAM_API_KEY", "test_telegram_token")
	defer os.Unsetenv("TELEGRAM_API_KEY")

	// Ensure optional env vars are unset
	optionalVars := []string{
		"CHART_BASE_URL",
		"QUOTE_BASE_URL",
		"SUBSCRIBERS_FILE",
		"BROADCAST_HOUR",
		"BROADCAST_MINUTE",
		"BROADCAST_TIMEZONE",
		"LOG_LEVEL",
	}
	for _, key := range optionalVars {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"ChartBaseURL", cfg.ChartBaseURL, "https://query1.finance.yahoo.com"},
		{"QuoteBaseURL", cfg.QuoteBaseURL, "https://query1.finance.yahoo.com"},
		{"SubscribersFile", cfg.SubscribersFile, "subscribers.json"},
		{"BroadcastTimezone", cfg.BroadcastTimezone, "Europe/Rome"},
		{"LogLevel", cfg.LogLevel, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.expected)
			}
		})
	}

	if cfg.BroadcastHour != 20 {
		t.Errorf("BroadcastHour = %d, want 20", cfg.BroadcastHour)
	}
	if cfg.BroadcastMinute != 0 {
		t.Errorf("BroadcastMinute = %d, want 0", cfg.BroadcastMinute)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("TELEGRAM_API_KEY")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error, got nil")
	}

	if !strings.Contains(err.Error(), "TELEGRAM_API_KEY") {
		t.Errorf("Load() error = %q, want error naming TELEGRAM_API_KEY", err.Error())
	}
}

package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Backend
	APIBaseURL         string `mapstructure:"API_BASE_URL"`
	HTTPTimeoutSeconds int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`

	// Listing
	PageSize         int `mapstructure:"PAGE_SIZE"`
	SearchDebounceMS int `mapstructure:"SEARCH_DEBOUNCE_MS"`

	// Session
	TokenFile string `mapstructure:"TOKEN_FILE"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL"` // debug | info | warn | error
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("API_BASE_URL", "http://localhost:8080")
	viper.SetDefault("HTTP_TIMEOUT_SECONDS", 10)
	viper.SetDefault("PAGE_SIZE", 10)
	viper.SetDefault("SEARCH_DEBOUNCE_MS", 800)
	viper.SetDefault("TOKEN_FILE", defaultTokenFile())
	viper.SetDefault("LOG_LEVEL", "info")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultTokenFile places the session token under the user config dir,
// falling back to the working directory when the platform has none.
func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".modavintage-token"
	}
	return filepath.Join(dir, "modavintage", "token")
}

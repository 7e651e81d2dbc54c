// Package config provides configuration loading for checkin.
//
// Configuration is loaded from a YAML file and overridden by CHECKIN_*
// environment variables, with hardcoded defaults as the base layer.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/dmafb/checkin/internal/api"
	"github.com/dmafb/checkin/internal/cache"
	"github.com/dmafb/checkin/internal/logging"
)

// Config holds the complete checkin configuration.
type Config struct {
	API     APIConfig      `koanf:"api"`
	Cache   CacheConfig    `koanf:"cache"`
	Storage StorageConfig  `koanf:"storage"`
	Logging logging.Config `koanf:"logging"`
}

// APIConfig holds remote API settings.
type APIConfig struct {
	BaseURL string   `koanf:"base_url"`
	Timeout Duration `koanf:"timeout"`
}

// CacheConfig holds freshness windows for cached API payloads.
type CacheConfig struct {
	SurveyListTTL Duration `koanf:"survey_list_ttl"`
}

// StorageConfig holds the device-local store location.
type StorageConfig struct {
	Path string `koanf:"path"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if _, err := url.Parse(c.API.BaseURL); err != nil {
		return fmt.Errorf("invalid api.base_url: %w", err)
	}
	if c.API.Timeout.Duration() <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.Cache.SurveyListTTL.Duration() <= 0 {
		return fmt.Errorf("cache.survey_list_ttl must be positive")
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path must not be empty")
	}
	return c.Logging.Validate()
}

// DataDir returns the per-user data directory, ~/.config/checkin.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "checkin"), nil
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config, dataDir string) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = api.DefaultBaseURL
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = Duration(15 * time.Second)
	}
	if cfg.Cache.SurveyListTTL == 0 {
		cfg.Cache.SurveyListTTL = Duration(cache.DefaultSurveyListTTL)
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = filepath.Join(dataDir, "checkin.db")
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = filepath.Join(dataDir, "checkin.log")
	}
}

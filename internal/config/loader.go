package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	maxConfigFileSize = 1024 * 1024 // 1MB
	envPrefix         = "CHECKIN_"
)

// LoadWithFile loads configuration from a YAML file, then overrides with
// environment variables.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (CHECKIN_API_BASE_URL, CHECKIN_LOGGING_LEVEL, ...)
//  2. YAML config file (~/.config/checkin/config.yaml)
//  3. Hardcoded defaults
//
// The configPath parameter specifies the YAML file to load. If empty, the
// default path is used. A missing file is not an error; defaults apply.
//
// Environment variables drop the CHECKIN_ prefix, are lowercased, and split
// on the first underscore into section.field_name:
//
//	CHECKIN_API_BASE_URL       -> api.base_url
//	CHECKIN_CACHE_SURVEY_LIST_TTL -> cache.survey_list_ttl
//	CHECKIN_LOGGING_LEVEL      -> logging.level
func LoadWithFile(configPath string) (*Config, error) {
	k := koanf.New(".")

	dataDir, err := DataDir()
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		configPath = filepath.Join(dataDir, "config.yaml")
	}

	if info, err := os.Stat(configPath); err == nil {
		if info.Size() > maxConfigFileSize {
			return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
		}

		f, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer f.Close()

		content, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		// CHECKIN_API_BASE_URL -> api.base_url: strip prefix, lowercase,
		// split on the first underscore only (section.field_name pattern).
		lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg, dataDir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// EnsureDataDir creates the checkin data directory if it doesn't exist, with
// owner-only permissions.
func EnsureDataDir() error {
	dataDir, err := DataDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmafb/checkin/internal/api"
)

func TestLoadWithFile_Defaults(t *testing.T) {
	cfg, err := LoadWithFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, api.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout.Duration())
	assert.Equal(t, 10*time.Second, cfg.Cache.SurveyListTTL.Duration())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Storage.Path)
}

func TestLoadWithFile_YAMLValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api:
  base_url: http://localhost:8080/api/v1
  timeout: 5s
cache:
  survey_list_ttl: 30s
logging:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout.Duration())
	assert.Equal(t, 30*time.Second, cfg.Cache.SurveyListTTL.Duration())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadWithFile_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://from-file\n"), 0600))

	t.Setenv("CHECKIN_API_BASE_URL", "http://from-env")
	t.Setenv("CHECKIN_LOGGING_LEVEL", "warn")

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env", cfg.API.BaseURL)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadWithFile_InvalidValuesRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: chatty\n"), 0600))

	_, err := LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadWithFile_RejectsOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	big := make([]byte, maxConfigFileSize+1)
	for i := range big {
		big[i] = '#'
	}
	require.NoError(t, os.WriteFile(path, big, 0600))

	_, err := LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestDuration_UnmarshalText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("90s")))
	assert.Equal(t, 90*time.Second, d.Duration())

	assert.Error(t, d.UnmarshalText([]byte("not-a-duration")))
	assert.Error(t, d.UnmarshalText([]byte("-5s")))
}

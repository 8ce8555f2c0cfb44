package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mshogin/travel-assistant/internal/domain/models"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(APIKeyEnv, "env-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Provider.APIKey)
	assert.Equal(t, "https://api.sarvam.ai/v1", cfg.Provider.BaseURL)
	assert.Equal(t, "/detect-language", cfg.Provider.DetectPath)
	assert.Equal(t, "https://api.sarvam.ai/translate", cfg.Provider.TranslateURL)
	assert.Equal(t, "sarvam-m", cfg.Generation.Model)
	assert.InDelta(t, 0.7, cfg.Generation.Temperature, 1e-6)
	assert.Equal(t, 5000, cfg.Generation.MaxTokens)
	assert.Equal(t, models.ModeFormal, cfg.Translation.Mode)
	assert.Equal(t, "en", cfg.Workflow.DefaultLanguage)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_TRAVEL_KEY", "from-yaml-env")

	path := writeConfig(t, `
server:
  port: 9090
provider:
  api_key: ${TEST_TRAVEL_KEY}
  base_url: http://localhost:1234/v1/
  timeout: 5s
generation:
  model: sarvam-m
  max_tokens: 100
  placeholder: "(no itinerary)"
translation:
  mode: code-mixed
workflow:
  include_tips: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-yaml-env", cfg.Provider.APIKey)
	assert.Equal(t, "http://localhost:1234/v1", cfg.Provider.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, 100, cfg.Generation.MaxTokens)
	assert.Equal(t, "(no itinerary)", cfg.Generation.Placeholder)
	assert.Equal(t, models.ModeCodeMixed, cfg.Translation.Mode)
	assert.True(t, cfg.Workflow.IncludeTips)
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [unclosed")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "bad base url", mutate: func(c *Config) { c.Provider.BaseURL = "not a url" }, wantErr: true},
		{name: "bad translate url", mutate: func(c *Config) { c.Provider.TranslateURL = "" }, wantErr: true},
		{name: "non-positive max tokens", mutate: func(c *Config) { c.Generation.MaxTokens = -1 }, wantErr: true},
		{name: "unknown mode", mutate: func(c *Config) { c.Translation.Mode = "shouting" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_CheckCredentials(t *testing.T) {
	cfg := Default()
	cfg.Provider.APIKey = ""
	assert.ErrorIs(t, cfg.CheckCredentials(), models.ErrMissingAPIKey)

	cfg.Provider.APIKey = "key"
	assert.NoError(t, cfg.CheckCredentials())
}

func TestLoad_IncludeTips(t *testing.T) {
	t.Run("on by default", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.True(t, cfg.Workflow.IncludeTips)
		assert.True(t, Default().Workflow.IncludeTips)
	})

	t.Run("set in file", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "workflow:\n  include_tips: false\n"))
		require.NoError(t, err)
		assert.False(t, cfg.Workflow.IncludeTips)
	})

	t.Run("other keys keep default", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "workflow:\n  default_language: hi\n"))
		require.NoError(t, err)
		assert.True(t, cfg.Workflow.IncludeTips)
	})
}

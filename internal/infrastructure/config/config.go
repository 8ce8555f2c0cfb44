package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mshogin/travel-assistant/internal/domain/models"
)

// APIKeyEnv is the environment variable holding the provider key.
const APIKeyEnv = "SARVAM_API_KEY"

// Config represents the application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Provider    ProviderConfig    `yaml:"provider"`
	Generation  GenerationConfig  `yaml:"generation"`
	Translation TranslationConfig `yaml:"translation"`
	Workflow    WorkflowConfig    `yaml:"workflow"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORSOrigins     []string      `yaml:"cors_origins"`
}

// ProviderConfig contains language-AI provider settings.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`

	// DetectPath is appended to BaseURL
	DetectPath string `yaml:"detect_path"`

	// TranslateURL is absolute; the provider serves it outside the versioned base
	TranslateURL string `yaml:"translate_url"`

	Timeout         time.Duration `yaml:"timeout"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

// GenerationConfig contains chat-completion settings.
type GenerationConfig struct {
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`

	// Placeholder replaces generated text when the call fails
	Placeholder string `yaml:"placeholder"`
}

// TranslationConfig contains translation settings.
type TranslationConfig struct {
	Mode models.TranslationMode `yaml:"mode"`
}

// WorkflowConfig contains itinerary workflow settings.
type WorkflowConfig struct {
	DefaultLanguage string `yaml:"default_language"`
	IncludeTips     bool   `yaml:"include_tips"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Output string `yaml:"output"`
}

// Load reads a .env file when present, then the configuration file.
// A missing configuration file is not an error: defaults and the
// environment are used instead.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := newConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		expanded := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

// Default returns a configuration built from defaults and the environment only.
func Default() *Config {
	cfg := newConfig()
	cfg.setDefaults()
	return &cfg
}

// newConfig pre-fills the defaults that a zero value cannot express.
// YAML keys present in the file override them.
func newConfig() Config {
	return Config{
		Workflow: WorkflowConfig{IncludeTips: true},
	}
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if _, err := url.ParseRequestURI(c.Provider.BaseURL); err != nil {
		return fmt.Errorf("invalid provider base_url %q: %w", c.Provider.BaseURL, err)
	}
	if _, err := url.ParseRequestURI(c.Provider.TranslateURL); err != nil {
		return fmt.Errorf("invalid provider translate_url %q: %w", c.Provider.TranslateURL, err)
	}

	if c.Generation.MaxTokens <= 0 {
		return fmt.Errorf("generation max_tokens must be positive: %d", c.Generation.MaxTokens)
	}

	if !c.Translation.Mode.Valid() {
		return fmt.Errorf("unknown translation mode: %s", c.Translation.Mode)
	}

	return nil
}

// CheckCredentials reports a missing provider key. It is a warning, not a
// validation failure: without a key every call falls back to its default.
func (c *Config) CheckCredentials() error {
	if strings.TrimSpace(c.Provider.APIKey) == "" {
		return fmt.Errorf("%w: set provider.api_key or %s", models.ErrMissingAPIKey, APIKeyEnv)
	}
	return nil
}

// setDefaults sets default values for optional fields.
func (c *Config) setDefaults() {
	// Server defaults
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	// Generation of a long plan plus translation can take well over a minute
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 5 * time.Minute
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}

	// Provider defaults
	if c.Provider.APIKey == "" {
		c.Provider.APIKey = os.Getenv(APIKeyEnv)
	}
	if c.Provider.BaseURL == "" {
		c.Provider.BaseURL = "https://api.sarvam.ai/v1"
	}
	c.Provider.BaseURL = strings.TrimRight(c.Provider.BaseURL, "/")
	if c.Provider.DetectPath == "" {
		c.Provider.DetectPath = "/detect-language"
	}
	if c.Provider.TranslateURL == "" {
		c.Provider.TranslateURL = "https://api.sarvam.ai/translate"
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = 120 * time.Second
	}
	if c.Provider.MaxIdleConns == 0 {
		c.Provider.MaxIdleConns = 10
	}
	if c.Provider.IdleConnTimeout == 0 {
		c.Provider.IdleConnTimeout = 90 * time.Second
	}

	// Generation defaults
	if c.Generation.Model == "" {
		c.Generation.Model = "sarvam-m"
	}
	if c.Generation.Temperature == 0 {
		c.Generation.Temperature = 0.7
	}
	if c.Generation.MaxTokens == 0 {
		c.Generation.MaxTokens = 5000
	}

	// Translation defaults
	if c.Translation.Mode == "" {
		c.Translation.Mode = models.ModeFormal
	}

	// Workflow defaults
	if c.Workflow.DefaultLanguage == "" {
		c.Workflow.DefaultLanguage = models.DefaultLanguage
	}

	// Logging defaults
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// expandEnvVars replaces ${VAR} and $VAR with environment variable values.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		return os.Getenv(key)
	})
}

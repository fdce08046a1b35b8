// Package config handles configuration loading for cardsmith.
// It supports a project-local .env file and environment variables,
// matching the variable names the tool has always used.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Provider identifies which LLM backend to talk to.
type Provider string

const (
	// ProviderOpenRouter sends requests to the OpenRouter chat-completions API.
	ProviderOpenRouter Provider = "openrouter"
	// ProviderAnthropic sends requests directly to the Anthropic Messages API.
	ProviderAnthropic Provider = "anthropic"
)

// Config holds all configuration for cardsmith. It is built once at startup
// and passed explicitly into constructors; nothing reads it globally.
type Config struct {
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	Models     ModelsConfig     `mapstructure:"models"`
	Provider   Provider         `mapstructure:"provider"`
	Resources  ResourcesConfig  `mapstructure:"resources"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	History    HistoryConfig    `mapstructure:"history"`
}

// OpenRouterConfig holds OpenRouter API settings.
type OpenRouterConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// ModelsConfig holds the model identifier for each operation.
type ModelsConfig struct {
	Validation string `mapstructure:"validation"`
	Creation   string `mapstructure:"creation"`
	Analysis   string `mapstructure:"analysis"`
}

// ResourcesConfig holds the location of template and prompt resource files.
type ResourcesConfig struct {
	Dir string `mapstructure:"dir"`
}

// HTTPConfig holds transport settings for the OpenRouter client.
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// HistoryConfig holds result-history settings.
type HistoryConfig struct {
	// Path overrides the default XDG database location when non-empty.
	Path string `mapstructure:"path"`
	// Disabled turns off result recording entirely.
	Disabled bool `mapstructure:"disabled"`
}

// Load builds the configuration from defaults, an optional .env file in the
// working directory, and the process environment.
// Precedence (highest to lowest):
// 1. Environment variables
// 2. .env file
// 3. Built-in defaults
func Load() (*Config, error) {
	return LoadFromEnvFile(".env")
}

// LoadFromEnvFile loads configuration, reading key/value pairs from the given
// env-format file if it exists. A missing file is not an error; the process
// environment alone is enough.
func LoadFromEnvFile(envFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Values from the .env file, when present. Kept in a separate viper so
	// the real environment always wins.
	fileVals := viper.New()
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			fileVals.SetConfigFile(envFile)
			fileVals.SetConfigType("env")
			if err := fileVals.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading %s: %w", envFile, err)
			}
		}
	}

	// lookup returns the first set variable, preferring the environment
	// over the .env file. Later names act as aliases for earlier ones.
	lookup := func(envVars ...string) string {
		for _, name := range envVars {
			if val := os.Getenv(name); val != "" {
				return val
			}
		}
		for _, name := range envVars {
			if val := fileVals.GetString(name); val != "" {
				return val
			}
		}
		return ""
	}
	set := func(key string, envVars ...string) {
		if val := lookup(envVars...); val != "" {
			v.Set(key, val)
		}
	}

	// The API key accepts OPENROUTER_API_KEY with API_KEY as an alias.
	set("openrouter.api_key", "OPENROUTER_API_KEY", "API_KEY")
	set("anthropic.api_key", "ANTHROPIC_API_KEY")

	// Each operation's model accepts the original Portuguese variable name
	// with an English alias.
	set("models.validation", "MODELO_VALIDACAO_INFO", "LLM_MODEL_VALIDATION")
	set("models.creation", "MODELO_CRIACAO", "LLM_MODEL_CREATION")
	set("models.analysis", "MODELO_ANALISE", "LLM_MODEL_ANALYSIS")

	set("provider", "CARDSMITH_PROVIDER")
	set("resources.dir", "CARDSMITH_RESOURCES_DIR")
	set("http.timeout", "CARDSMITH_HTTP_TIMEOUT")
	set("history.path", "CARDSMITH_HISTORY_PATH")

	if raw := lookup("CARDSMITH_HISTORY_DISABLED"); raw != "" {
		disabled, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("CARDSMITH_HISTORY_DISABLED: %w", err)
		}
		v.Set("history.disabled", disabled)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.OpenRouter.APIKey = os.ExpandEnv(cfg.OpenRouter.APIKey)
	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)

	switch cfg.Provider {
	case ProviderOpenRouter, ProviderAnthropic:
	default:
		return nil, fmt.Errorf("unknown provider %q (want %q or %q)",
			cfg.Provider, ProviderOpenRouter, ProviderAnthropic)
	}

	return cfg, nil
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", string(ProviderOpenRouter))
	v.SetDefault("resources.dir", "resources")
	v.SetDefault("http.timeout", "60s")
	v.SetDefault("history.disabled", false)
}

// TemplatesPath returns the path to the card templates file.
func (c *Config) TemplatesPath() string {
	return filepath.Join(c.Resources.Dir, "templates.txt")
}

// Default returns a Config with built-in defaults and no credentials.
func Default() *Config {
	return &Config{
		Provider:  ProviderOpenRouter,
		Resources: ResourcesConfig{Dir: "resources"},
		HTTP:      HTTPConfig{Timeout: 60 * time.Second},
	}
}

// Package config provides API key management utilities.
package config

import "errors"

// ErrNoAPIKey is returned when no API key is configured for the active provider.
var ErrNoAPIKey = errors.New("no API key configured: set OPENROUTER_API_KEY or API_KEY")

// APIKey returns the API key for the active provider.
func (c *Config) APIKey() (string, error) {
	var key string
	switch c.Provider {
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	default:
		key = c.OpenRouter.APIKey
	}
	if key == "" {
		return "", ErrNoAPIKey
	}
	return key, nil
}

// MaskAPIKey returns a masked version of an API key for display.
// Shows the first 6 and last 4 characters.
func MaskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 12 {
		return "***"
	}
	return key[:6] + "..." + key[len(key)-4:]
}

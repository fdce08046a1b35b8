package llm

import "cardsmith/internal/config"

// NewFromConfig builds the client for the configured provider.
func NewFromConfig(cfg *config.Config) (Client, error) {
	key, err := cfg.APIKey()
	if err != nil {
		return nil, err
	}

	if cfg.Provider == config.ProviderAnthropic {
		c, err := NewAnthropicClient(key)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	c, err := NewOpenRouterClient(key, cfg.HTTP.Timeout)
	if err != nil {
		return nil, err
	}
	return c, nil
}

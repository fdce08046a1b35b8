package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"cardsmith/internal/config"
)

// anthropicMaxTokens caps reply length for the Anthropic Messages API, which
// requires an explicit limit. Cards and analyses fit comfortably below this.
const anthropicMaxTokens = 8192

// AnthropicClient talks to the Anthropic Messages API.
// It is selected with provider "anthropic" for users who hold a direct
// Anthropic key instead of an OpenRouter one.
type AnthropicClient struct {
	inner anthropic.Client
}

// NewAnthropicClient creates a client for the Anthropic API.
func NewAnthropicClient(apiKey string) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, config.ErrNoAPIKey
	}
	return &AnthropicClient{
		inner: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

// ChatCompletion sends the prompt as a single user message and returns the
// concatenated text blocks of the reply.
func (c *AnthropicClient) ChatCompletion(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		return "", ErrNoModel
	}

	resp, err := c.inner.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("calling model API: %w", err)
	}

	var result strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			result.WriteString(variant.Text)
		}
	}
	if result.Len() == 0 {
		return "", fmt.Errorf("%w: no text blocks in reply", ErrMalformedResponse)
	}

	return strings.TrimSpace(result.String()), nil
}

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cardsmith/internal/config"
)

// DefaultOpenRouterURL is the OpenRouter chat-completions endpoint.
const DefaultOpenRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouterClient talks to the OpenRouter chat-completions API.
type OpenRouterClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// OpenRouterOption customizes an OpenRouterClient.
type OpenRouterOption func(*OpenRouterClient)

// WithBaseURL overrides the endpoint URL. Used by tests.
func WithBaseURL(url string) OpenRouterOption {
	return func(c *OpenRouterClient) { c.baseURL = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) OpenRouterOption {
	return func(c *OpenRouterClient) { c.http = hc }
}

// NewOpenRouterClient creates a client for the OpenRouter API.
// The API key is validated here so a missing key fails before any network I/O.
func NewOpenRouterClient(apiKey string, timeout time.Duration, opts ...OpenRouterOption) (*OpenRouterClient, error) {
	if apiKey == "" {
		return nil, config.ErrNoAPIKey
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	c := &OpenRouterClient{
		apiKey:  apiKey,
		baseURL: DefaultOpenRouterURL,
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// chatRequest is the OpenAI-style request body OpenRouter accepts.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatCompletion sends one user message carrying the prompt and returns the
// model's reply text.
func (c *OpenRouterClient) ChatCompletion(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		return "", ErrNoModel
	}

	body, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling model API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPError{Status: resp.StatusCode, Body: truncate(string(respBody), 200)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in reply", ErrMalformedResponse)
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// truncate shortens s for error messages.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Package llm provides the chat-completion clients cardsmith talks to.
// One request per user action: no retries, no rate limiting, no streaming.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client sends a single prompt to a model and returns the raw reply text.
type Client interface {
	ChatCompletion(ctx context.Context, model, prompt string) (string, error)
}

// ErrNoModel is returned when an operation has no model identifier configured.
var ErrNoModel = errors.New("no model configured for this operation")

// ErrMalformedResponse is returned when the API reply cannot be parsed into
// the expected structure.
var ErrMalformedResponse = errors.New("malformed response from model API")

// HTTPError reports a non-2xx status from the remote API.
type HTTPError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("model API returned HTTP %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("model API returned HTTP %d", e.Status)
}

// internal/llm/client.go
package llm

import (
	"context"
	"errors"
)

var (
	ErrEmptyResponse = errors.New("empty llm response")
	ErrNoJSON        = errors.New("llm did not return a JSON object")
	ErrNotConfigured = errors.New("llm client not configured")
)

// Client sends one prompt to a text generation model and returns its reply.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

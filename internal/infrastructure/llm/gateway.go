// Package llm wraps the generative model behind a single
// prompt-in, text-out call.
package llm

import (
	"context"
	"errors"
)

var (
	// ErrModelUnavailable covers transport, auth and remote failures,
	// including an exceeded deadline.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrModelEmptyResponse is returned when the model answers with no text.
	ErrModelEmptyResponse = errors.New("model returned an empty response")
)

// Gateway makes exactly one model call per Invoke. It does not retry and does
// not interpret the returned text.
type Gateway interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// GatewayFunc adapts a function to Gateway.
type GatewayFunc func(ctx context.Context, prompt string) (string, error)

func (f GatewayFunc) Invoke(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

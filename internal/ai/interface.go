package ai

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned by a Provider whose backend answered without usable text.
var ErrEmptyResponse = errors.New("ai: empty response")

// Provider is a single named generative model endpoint.
// Complete returns the raw completion text or an error; it never retries.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// Completer is what the synthesizers depend on. *Orchestrator implements it.
type Completer interface {
	GetResponse(ctx context.Context, prompt string) string
}

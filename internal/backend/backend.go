// Package backend defines the completion backend contract and its concrete
// implementations.
//
// A backend accepts an ordered message sequence (one system/context message
// followed by one user message) and returns generated text. Backend failures
// are surfaced to the caller with the backend's identity; this package never
// retries.
package backend

import (
	"context"
	"errors"
	"fmt"
)

// Message roles used by the orchestrator.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ErrUnknownBackend is a configuration error: the requested backend name is
// not registered.
var ErrUnknownBackend = errors.New("unknown backend")

// Message is a single entry in the completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options carries provider-tunable completion parameters. Zero values mean
// provider defaults.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// Backend generates text from a message sequence.
type Backend interface {
	// Complete generates a completion for the ordered message sequence.
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)

	// Name returns the backend identifier used in records and state.
	Name() string
}

// Open returns the backend registered under name.
//
// Known names: "echo" (deterministic local backend, the default), "openai",
// and "anthropic". The API-backed backends read their credentials from the
// environment when constructed.
func Open(name string) (Backend, error) {
	switch name {
	case "echo":
		return NewEcho(), nil
	case "openai":
		return NewOpenAI()
	case "anthropic":
		return NewAnthropic()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

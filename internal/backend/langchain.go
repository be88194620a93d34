package backend

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// Default models for the API-backed backends.
const (
	defaultOpenAIModel    = "gpt-4o"
	defaultAnthropicModel = "claude-3-5-sonnet-20241022"
)

// langchainBackend adapts a langchaingo model to the Backend interface.
// Credentials come from the environment (OPENAI_API_KEY, ANTHROPIC_API_KEY);
// timeouts and retries are the provider client's responsibility.
type langchainBackend struct {
	name  string
	model string
	llm   llms.Model
}

// NewOpenAI creates a backend over the OpenAI chat completion API.
func NewOpenAI() (Backend, error) {
	llm, err := openai.New(openai.WithModel(defaultOpenAIModel))
	if err != nil {
		return nil, fmt.Errorf("backend openai: %w", err)
	}
	return &langchainBackend{name: "openai", model: defaultOpenAIModel, llm: llm}, nil
}

// NewAnthropic creates a backend over the Anthropic messages API.
func NewAnthropic() (Backend, error) {
	llm, err := anthropic.New(anthropic.WithModel(defaultAnthropicModel))
	if err != nil {
		return nil, fmt.Errorf("backend anthropic: %w", err)
	}
	return &langchainBackend{name: "anthropic", model: defaultAnthropicModel, llm: llm}, nil
}

// Name returns the backend identifier.
func (b *langchainBackend) Name() string { return b.name }

// Complete sends the message sequence to the provider and returns the first
// choice's text. Failures carry the backend identity and the underlying
// cause; they are not retried here.
func (b *langchainBackend) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		role := schema.ChatMessageTypeHuman
		if m.Role == RoleSystem {
			role = schema.ChatMessageTypeSystem
		}
		content = append(content, llms.TextParts(role, m.Content))
	}

	var callOpts []llms.CallOption
	if opts.Model != "" {
		callOpts = append(callOpts, llms.WithModel(opts.Model))
	}
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}
	if opts.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(opts.Temperature))
	}

	resp, err := b.llm.GenerateContent(ctx, content, callOpts...)
	if err != nil {
		return "", fmt.Errorf("backend %s: %w", b.name, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", fmt.Errorf("backend %s: empty completion", b.name)
	}
	return resp.Choices[0].Content, nil
}

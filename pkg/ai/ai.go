// Package ai provides language-model clients that turn a prompt into
// generated text. Every provider is exposed through the same Client
// interface so the workflow never branches on provider type.
package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Client generates text from a prompt.
type Client interface {
	GetContent(ctx context.Context, prompt string) (string, error)
}

// Provider identifies a supported language-model backend.
type Provider string

const (
	// ProviderGPT is OpenAI's chat completion API.
	ProviderGPT Provider = "gpt"
	// ProviderClaude is Anthropic's messages API.
	ProviderClaude Provider = "claude"
	// ProviderGemini is Google's generative language API.
	ProviderGemini Provider = "gemini"
)

// ParseProvider converts a user-supplied provider name into a Provider.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case ProviderGPT:
		return ProviderGPT, nil
	case ProviderClaude:
		return ProviderClaude, nil
	case ProviderGemini:
		return ProviderGemini, nil
	default:
		return "", fmt.Errorf("unknown AI provider %q (supported: gpt, claude, gemini)", s)
	}
}

// Generation defaults shared across providers.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 800
)

// Config holds provider-independent client settings. Zero values fall
// back to per-provider defaults.
type Config struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int

	// BaseURL overrides the provider endpoint. Mainly for tests.
	BaseURL string
	// HTTPClient overrides the default transport. Mainly for tests.
	HTTPClient *http.Client
}

func (c Config) temperature() float64 {
	if c.Temperature == 0 {
		return DefaultTemperature
	}
	return c.Temperature
}

func (c Config) maxTokens() int {
	if c.MaxTokens == 0 {
		return DefaultMaxTokens
	}
	return c.MaxTokens
}

func (c Config) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return &http.Client{}
	}
	return c.HTTPClient
}

// NewClient builds the client for the given provider.
func NewClient(provider Provider, cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("AI provider %q requires an API key", provider)
	}
	switch provider {
	case ProviderGPT:
		return NewGPTClient(cfg), nil
	case ProviderClaude:
		return NewClaudeClient(cfg), nil
	case ProviderGemini:
		return NewGeminiClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q (supported: gpt, claude, gemini)", provider)
	}
}

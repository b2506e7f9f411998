package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pullpilot-run/pullpilot/pkg/log"
)

// Anthropic messages API defaults.
const (
	claudeBaseURL      = "https://api.anthropic.com/v1"
	claudeDefaultModel = "claude-3-opus-20240229"
	claudeAPIVersion   = "2023-06-01"
)

// ClaudeClient talks to Anthropic's messages API.
type ClaudeClient struct {
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	baseURL     string
	httpClient  *http.Client
}

// NewClaudeClient creates an Anthropic client from cfg.
func NewClaudeClient(cfg Config) *ClaudeClient {
	model := cfg.Model
	if model == "" {
		model = claudeDefaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = claudeBaseURL
	}
	return &ClaudeClient{
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: cfg.temperature(),
		maxTokens:   cfg.maxTokens(),
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		httpClient:  cfg.httpClient(),
	}
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeMessage struct {
	Role    string          `json:"role"`
	Content []claudeContent `json:"content"`
}

type claudeRequest struct {
	Model       string          `json:"model"`
	Messages    []claudeMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type claudeResponse struct {
	Content    []claudeContent `json:"content"`
	StopReason string          `json:"stop_reason"`
}

// GetContent sends prompt to the model and returns the generated text.
func (c *ClaudeClient) GetContent(ctx context.Context, prompt string) (string, error) {
	log.Debug("sending prompt to Anthropic", "model", c.model, "prompt_length", len(prompt))

	body, err := json.Marshal(claudeRequest{
		Model: c.model,
		Messages: []claudeMessage{
			{Role: "user", Content: []claudeContent{{Type: "text", Text: prompt}}},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", claudeAPIVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("anthropic api error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var claudeResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&claudeResp); err != nil {
		return "", fmt.Errorf("failed to decode Anthropic response: %w", err)
	}
	for _, content := range claudeResp.Content {
		if content.Type == "text" {
			return content.Text, nil
		}
	}
	return "", fmt.Errorf("anthropic response contained no text content")
}

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

// OpenAI chat completion defaults.
const (
	gptBaseURL      = "https://api.openai.com/v1"
	gptDefaultModel = "gpt-4"
)

// GPTClient talks to OpenAI's chat completion API.
type GPTClient struct {
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	baseURL     string
	httpClient  *http.Client
}

// NewGPTClient creates an OpenAI client from cfg.
func NewGPTClient(cfg Config) *GPTClient {
	model := cfg.Model
	if model == "" {
		model = gptDefaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = gptBaseURL
	}
	return &GPTClient{
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: cfg.temperature(),
		maxTokens:   cfg.maxTokens(),
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		httpClient:  cfg.httpClient(),
	}
}

type gptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type gptRequest struct {
	Model       string       `json:"model"`
	Messages    []gptMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
	MaxTokens   int          `json:"max_tokens"`
}

type gptChoice struct {
	Message      gptMessage `json:"message"`
	FinishReason string     `json:"finish_reason"`
}

type gptResponse struct {
	Choices []gptChoice `json:"choices"`
}

// GetContent sends prompt to the model and returns the generated text.
func (c *GPTClient) GetContent(ctx context.Context, prompt string) (string, error) {
	log.Debug("sending prompt to OpenAI", "model", c.model, "prompt_length", len(prompt))

	body, err := json.Marshal(gptRequest{
		Model:       c.model,
		Messages:    []gptMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai api error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var gptResp gptResponse
	if err := json.NewDecoder(resp.Body).Decode(&gptResp); err != nil {
		return "", fmt.Errorf("failed to decode OpenAI response: %w", err)
	}
	if len(gptResp.Choices) == 0 {
		return "", fmt.Errorf("openai response contained no choices")
	}
	return gptResp.Choices[0].Message.Content, nil
}

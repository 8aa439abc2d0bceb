// Package llm provides the chat-completion client used by the AI-assisted
// generator, and a Mistral implementation of it.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Completer defines the interface for chat-completion backends.
type Completer interface {
	// Complete sends the request and returns the first choice's message text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// ModelName returns the default model for provenance and logging.
	ModelName() string
}

// Message is one chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is a single chat-completion call. An empty Model uses
// the client's default.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
	RandomSeed  *int
}

// UserPrompt returns a message list holding a single user message.
func UserPrompt(prompt string) []Message {
	return []Message{{Role: "user", Content: prompt}}
}

// Seed returns a pointer to n for CompletionRequest.RandomSeed.
func Seed(n int) *int { return &n }

const (
	DefaultMistralBaseURL = "https://api.mistral.ai/v1"
	DefaultMistralModel   = "mistral-large-latest"
	DefaultTimeout        = 60 * time.Second
)

// ErrNoChoices is returned when a 200 response carries no completion.
var ErrNoChoices = errors.New("no choices in response")

// MistralClient implements Completer against the Mistral chat completions API.
type MistralClient struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// MistralConfig holds configuration for creating a Mistral client.
type MistralConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewMistralClient creates a client from explicit config.
func NewMistralClient(cfg MistralConfig) (*MistralClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("MISTRAL_API_KEY is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultMistralBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultMistralModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &MistralClient{
		BaseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// chatRequest is the Mistral chat completions request body.
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	RandomSeed  *int      `json:"random_seed,omitempty"`
}

// chatResponse is the Mistral chat completions response body.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// ModelName returns the default model.
func (c *MistralClient) ModelName() string {
	return c.Model
}

// Complete sends a chat completion request to Mistral.
func (c *MistralClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.Model
	}
	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		RandomSeed:  req.RandomSeed,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Mistral API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return chatResp.Choices[0].Message.Content, nil
}

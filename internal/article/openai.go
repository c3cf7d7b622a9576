// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package article

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/blog-engine/internal/httputil"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// openaiAPIBase is the chat completions endpoint. Package-level var for
// test substitution.
var openaiAPIBase = "https://api.openai.com/v1/chat/completions"

// OpenAIBackend calls an OpenAI-compatible chat completions API.
// Per prd003-generation R5.1.
type OpenAIBackend struct {
	APIKey     string
	Model      string
	MaxRetries int
	Client     *http.Client
}

// NewOpenAIBackend builds a backend from generation settings.
func NewOpenAIBackend(cfg types.GenerationConfig) *OpenAIBackend {
	timeout := cfg.HTTPConfig.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OpenAIBackend{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		MaxRetries: cfg.MaxRetries,
		Client:     &http.Client{Timeout: timeout},
	}
}

// chatRequest is the request body for the chat completions API.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// chatMessage is a single message in the conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the response body from the chat completions API.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends one system+user exchange and returns the model's text.
func (c *OpenAIBackend) Complete(ctx context.Context, system, user string) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("missing API key (set BLOG_ENGINE_API_KEY or .secrets/openai-api-key)")
	}
	if c.Model == "" {
		return "", fmt.Errorf("missing model identifier")
	}

	body, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openaiAPIBase, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, c.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("calling completion API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("completion API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}
	if len(cResp.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}

	return strings.TrimSpace(cResp.Choices[0].Message.Content), nil
}

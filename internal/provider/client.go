// Package provider implements the OpenAI HTTP API surface used by the
// request handlers: chat completions, image generation/editing/variation
// with result download, and audio transcription.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/set-night/aibridge/internal/config"
	"github.com/set-night/aibridge/internal/usage"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: config.RequestTimeout},
	}
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// ChatCompletion sends a chat completion request and returns the first
// choice's content together with the token usage block.
func (c *Client) ChatCompletion(ctx context.Context, apiKey string, chatReq ChatRequest) (string, usage.Tokens, error) {
	payload, err := json.Marshal(chatReq)
	if err != nil {
		return "", usage.Tokens{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", usage.Tokens{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", usage.Tokens{}, fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	body, err := readSuccess(resp)
	if err != nil {
		return "", usage.Tokens{}, err
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", usage.Tokens{}, fmt.Errorf("parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", usage.Tokens{}, fmt.Errorf("response contains no choices")
	}

	tokens := usage.Tokens{
		Prompt:     chatResp.Usage.PromptTokens,
		Completion: chatResp.Usage.CompletionTokens,
		Total:      chatResp.Usage.TotalTokens,
	}
	return chatResp.Choices[0].Message.Content, tokens, nil
}

// readSuccess consumes the body and converts any non-2xx status into an
// error carrying the response text.
func readSuccess(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider returned %s: %s", resp.Status, truncate(string(body), 200))
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

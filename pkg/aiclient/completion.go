package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var ErrDisabled = errors.New("aiclient: no API key configured")

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a single system+user prompt pair and returns the assistant
// text. maxTokens <= 0 falls back to the configured budget.
func (c *Client) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	if maxTokens <= 0 {
		maxTokens = c.cfg.MaxTokens
	}

	c.limiter.Wait(ctx)

	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   maxTokens,
	}

	var content string
	err := c.breaker.Execute(func() error {
		return c.retry.Do(ctx, true, func() error {
			out, err := c.doCompletion(ctx, reqBody)
			if err != nil {
				return err
			}
			content = out
			return nil
		})
	})
	if err != nil {
		return "", err
	}
	return content, nil
}

func (c *Client) doCompletion(ctx context.Context, body chatRequest) (string, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("aiclient: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewBuffer(b))
	if err != nil {
		return "", fmt.Errorf("aiclient: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("aiclient: api error: %s: %s", resp.Status, string(detail))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("aiclient: empty choices in response")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

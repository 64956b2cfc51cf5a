package mailclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrDisabled = errors.New("mailclient: no API key configured")

// Client sends transactional email through a Resend-compatible HTTP API.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewFromEnv() *Client {
	return New(LoadFromEnv())
}

func New(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// Enabled reports whether an API key was configured. Callers without a key
// should pick a logging fallback once at startup.
func (c *Client) Enabled() bool {
	return c.cfg.APIKey != ""
}

// Message is one outbound email.
type Message struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// Send delivers a message, retrying transient failures with linear backoff.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if !c.Enabled() {
		return ErrDisabled
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("mailclient: no recipients")
	}

	var err error
	for i := 0; i <= c.cfg.RetryCount; i++ {
		err = c.doSend(ctx, msg)
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.cfg.RetryDelay * time.Duration(i+1)):
		}
	}
	return err
}

func (c *Client) doSend(ctx context.Context, msg Message) error {
	body := sendRequest{
		From:    c.cfg.From,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	}

	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("mailclient: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/emails", bytes.NewBuffer(b))
	if err != nil {
		return fmt.Errorf("mailclient: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("mailclient: api error: %s: %s", resp.Status, string(detail))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

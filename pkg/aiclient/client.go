package aiclient

import (
	"net/http"
)

// Client talks to an OpenAI-compatible chat completion API. Construct once at
// startup; Enabled reports whether an API key was configured so callers can
// pick their fallback strategy up front instead of probing per call.
type Client struct {
	cfg     Config
	http    *http.Client
	retry   RetryPolicy
	limiter *RateLimiter
	breaker CircuitBreaker
}

func NewFromEnv() *Client {
	return New(LoadFromEnv())
}

func New(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		retry: RetryPolicy{
			MaxRetries: cfg.RetryCount,
			BaseDelay:  cfg.RetryDelay,
		},
		limiter: NewRateLimiter(cfg.RateLimit, cfg.RateBurst),
		breaker: NewCircuitBreaker(cfg),
	}
}

// Enabled reports whether the client can reach the provider at all.
func (c *Client) Enabled() bool {
	return c.cfg.APIKey != ""
}

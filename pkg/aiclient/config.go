package aiclient

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	BaseURL string
	APIKey  string
	Model   string

	Timeout time.Duration

	MaxTokens   int
	Temperature float64

	RetryCount int
	RetryDelay time.Duration

	RateLimit int
	RateBurst int

	CircuitBreakerEnabled bool
	CBFailureThreshold    int
	CBRecoveryTime        time.Duration
	CBMinRequests         int
	CBSamplingDuration    time.Duration
	CBHalfOpenMaxSuccess  int
}

func LoadFromEnv() Config {
	return Config{
		BaseURL: getString("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		Model:   getString("OPENAI_MODEL", "gpt-4o-mini"),

		Timeout: time.Second * time.Duration(getInt("OPENAI_TIMEOUT", 30)),

		MaxTokens:   getInt("OPENAI_MAX_TOKENS", 200),
		Temperature: getFloat("OPENAI_TEMPERATURE", 0.7),

		RetryCount: getInt("OPENAI_RETRY_COUNT", 2),
		RetryDelay: time.Second * time.Duration(getInt("OPENAI_RETRY_DELAY", 1)),

		RateLimit: getInt("OPENAI_RATE_LIMIT", 60),
		RateBurst: getInt("OPENAI_RATE_BURST", 2),

		CircuitBreakerEnabled: getBool("OPENAI_ENABLE_CIRCUIT_BREAKER", true),
		CBFailureThreshold:    getInt("OPENAI_CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
		CBRecoveryTime:        time.Second * time.Duration(getInt("OPENAI_CIRCUIT_BREAKER_RECOVERY_TIME", 60)),
		CBMinRequests:         getInt("OPENAI_CIRCUIT_BREAKER_MIN_REQUESTS", 10),
		CBSamplingDuration:    time.Second * time.Duration(getInt("OPENAI_CIRCUIT_BREAKER_SAMPLING_DURATION", 60)),
		CBHalfOpenMaxSuccess:  getInt("OPENAI_CIRCUIT_BREAKER_HALF_OPEN_MAX_SUCCESS", 3),
	}
}

func getString(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		return v == "true"
	}
	return def
}

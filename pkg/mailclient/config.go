package mailclient

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	BaseURL string
	APIKey  string

	// From is the verified sender address stamped on every message.
	From string

	Timeout time.Duration

	RetryCount int
	RetryDelay time.Duration
}

func LoadFromEnv() Config {
	return Config{
		BaseURL: getString("MAIL_API_URL", "https://api.resend.com"),
		APIKey:  os.Getenv("MAIL_API_KEY"),
		From:    getString("MAIL_FROM", "Launchpad <events@launchpad.events>"),

		Timeout: time.Second * time.Duration(getInt("MAIL_TIMEOUT", 15)),

		RetryCount: getInt("MAIL_RETRY_COUNT", 2),
		RetryDelay: time.Second * time.Duration(getInt("MAIL_RETRY_DELAY", 1)),
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

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName    string
	AppVersion string
	Port       string

	Environment string

	// LifecycleAPIToken is the shared secret the external scheduler presents
	// as a bearer token when triggering an engine pass.
	LifecycleAPIToken string

	LifecycleInterval   time.Duration
	LifecycleRunTimeout time.Duration
	LifecycleBatchSize  int

	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:     getenv("APP_SERVICE", "launchpad"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Port:        getenv("PORT", "8081"),
		Environment: getenv("ENVIRONMENT", "development"),

		LifecycleAPIToken: strings.TrimSpace(getenv("LIFECYCLE_API_TOKEN", "")),

		LifecycleInterval:   time.Minute * time.Duration(getenvInt("LIFECYCLE_INTERVAL_MINUTES", 60)),
		LifecycleRunTimeout: time.Second * time.Duration(getenvInt("LIFECYCLE_RUN_TIMEOUT_SECONDS", 60)),
		LifecycleBatchSize:  getenvInt("LIFECYCLE_BATCH_SIZE", 200),

		DBHost:            getenv("DB_HOST", "localhost"),
		DBPort:            getenv("DB_PORT", "5432"),
		DBName:            getenv("DB_NAME", "launchpad"),
		DBUser:            getenv("DB_USER", "postgres"),
		DBPassword:        getenv("DB_PASSWORD", "postgres"),
		DBSSLMode:         getenv("DB_SSL_MODE", "disable"),
		DBMaxIdleConn:     10,
		DBMaxOpenConn:     100,
		DBConnMaxLifetime: 3600,
		DBConnMaxIdleTime: 60,
	}

	return &cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Version is reported by the API envelope and the fetch user agent.
const Version = "0.2.0"

type Config struct {
	BronzeDir string
	SilverDir string
	OutputDir string

	FetchTimeoutMs  int
	FetchRetries    int
	FetchBackoffMs  int
	FetchRateRPS    int
	FetchUserAgent  string
	FetchInsecureOK bool

	APIHost         string
	APIPort         int
	APIDefaultLimit int
	APIMaxLimit     int
	RefreshCron     string

	LogLevel  string
	LogFormat string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BronzeDir: getEnv("BRONZE_DIR", filepath.Join(cwd, "data", "bronze")),
		SilverDir: getEnv("SILVER_DIR", filepath.Join(cwd, "data", "silver")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		FetchTimeoutMs:  getEnvInt("FETCH_TIMEOUT_MS", 60000),
		FetchRetries:    getEnvInt("FETCH_RETRIES", 3),
		FetchBackoffMs:  getEnvInt("FETCH_BACKOFF_MS", 2000),
		FetchRateRPS:    getEnvInt("FETCH_RATE_LIMIT_RPS", 2),
		FetchUserAgent:  getEnv("FETCH_USER_AGENT", "ParlamentoDB-ETL/"+Version),
		FetchInsecureOK: getEnvBool("FETCH_INSECURE_SKIP_VERIFY", false),

		APIHost:         getEnv("API_HOST", "0.0.0.0"),
		APIPort:         getEnvInt("API_PORT", 8080),
		APIDefaultLimit: getEnvInt("API_DEFAULT_LIMIT", 50),
		APIMaxLimit:     getEnvInt("API_MAX_LIMIT", 500),
		RefreshCron:     getEnv("REFRESH_CRON", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}

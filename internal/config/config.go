// Package config loads command-line settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings shared by every tweetie subcommand.
type Config struct {
	KeysFile  string
	Addr      string
	Proxy     string
	BaseURL   string
	Timeout   time.Duration
	LogLevel  string
	LogFormat string
}

// Load reads envFile (if it exists) into the process environment, then
// builds a Config from it. Variables already set in the environment win.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		KeysFile:  getEnv("TWITTER_KEYS_FILE", "twitter.csv"),
		Addr:      getEnv("TWEETIE_ADDR", ":8080"),
		Proxy:     getEnv("TWITTER_PROXY", ""),
		BaseURL:   getEnv("TWITTER_API_URL", ""),
		LogLevel:  getEnv("TWEETIE_LOG_LEVEL", "info"),
		LogFormat: getEnv("TWEETIE_LOG_FORMAT", "text"),
	}

	if v := os.Getenv("TWITTER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("TWITTER_TIMEOUT must be a duration: %w", err)
		}
		if d < 0 {
			return nil, fmt.Errorf("TWITTER_TIMEOUT must not be negative, got %s", d)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

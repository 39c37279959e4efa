// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// maxDownloadTimeout caps the wait of one download command.
const maxDownloadTimeout = 3 * time.Minute

// Config holds the jmctl settings read from the environment.
type Config struct {
	BaseURL    string        `env:"JM_API_BASE_URL"    envDefault:"http://localhost:5000"`
	ClientType string        `env:"JM_API_CLIENT_TYPE" envDefault:"html"`
	Timeout    time.Duration `env:"JM_API_TIMEOUT"     envDefault:"30s"`

	// Display caps
	MaxSearchResults int `env:"JM_MAX_SEARCH_RESULTS" envDefault:"5"`
	MaxChapters      int `env:"JM_MAX_CHAPTERS"       envDefault:"10"`
}

// LoadConfig parses the environment. Non-positive values fall back to the defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxSearchResults <= 0 {
		cfg.MaxSearchResults = 5
	}
	if cfg.MaxChapters <= 0 {
		cfg.MaxChapters = 10
	}
	return cfg, nil
}

// DownloadTimeout scales the request timeout with the number of chapters,
// clamped to [timeout, 3m].
func DownloadTimeout(timeout time.Duration, chapters int) time.Duration {
	total := timeout * time.Duration(chapters)
	if total > maxDownloadTimeout {
		total = maxDownloadTimeout
	}
	if total < timeout {
		total = timeout
	}
	return total
}

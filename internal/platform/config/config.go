// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles process-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Scope:

  - This package covers the server process only (bind address, logging, cache).
  - Settings of the comic library itself live in jm.yaml and are loaded by
    package jm. Config only tells where that file is.
*/
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/jmcomic-api/pkg/query"
)

// OptionFileName is the library configuration file looked up next to the executable.
const OptionFileName = "jm.yaml"

// # Configuration Schema

// Config holds all runtime configuration for the API server.
type Config struct {

	// Server settings
	Host        string `env:"API_HOST"     envDefault:"0.0.0.0"`
	Port        string `env:"API_PORT"     envDefault:"5000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// LogFile duplicates the JSON log into a rotating file when set.
	LogFile string `env:"LOG_FILE"`

	// Library configuration
	OptionPath string `env:"JM_CONFIG"`
	Proxy      string `env:"JM_PROXY"`

	// Timeouts. Zero disables the timeout.
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"  envDefault:"60s"`
	DownloadTimeout time.Duration `env:"DOWNLOAD_TIMEOUT" envDefault:"0s"`

	// Optional detail cache (Redis)
	RedisURL       string        `env:"REDIS_URL"`
	DetailCacheTTL time.Duration `env:"DETAIL_CACHE_TTL" envDefault:"1h"`

	// Cross-Origin Resource Sharing, comma separated
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// Addr is the listen address built from Host and Port.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowedOrigins returns the trimmed EXTRA_ORIGINS entries.
func (c *Config) AllowedOrigins() []string {
	return query.StringSlice(c.ExtraOrigins)
}

// ResolveOptionPath returns the jm.yaml location.
//
// JM_CONFIG wins; otherwise the file sits next to the running executable.
func (c *Config) ResolveOptionPath() (string, error) {
	if c.OptionPath != "" {
		return filepath.Abs(c.OptionPath)
	}

	executable, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("config: locate executable: %w", err)
	}

	return filepath.Join(filepath.Dir(executable), OptionFileName), nil
}
